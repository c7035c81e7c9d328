package sink

import (
	"presencesync/internal/errors"
	"presencesync/internal/presence"
	"presencesync/internal/storage"
)

// File mirrors the current presence into a JSON file that other processes
// can poll. Disposing the client removes the file.
type File struct {
	tracker
	appID string
	path  string
}

func NewFile(appID, path string) *File {
	return &File{appID: appID, path: path}
}

func (f *File) Path() string {
	return f.path
}

// Connect writes an empty presence so readers can tell the sink is live.
func (f *File) Connect() error {
	return f.write(nil)
}

func (f *File) Publish(rec presence.Record) error {
	if err := f.write(&rec); err != nil {
		return err
	}
	f.set(rec)
	return nil
}

func (f *File) Dispose() error {
	f.clear()
	if err := storage.Remove(f.path); err != nil {
		return errors.SinkError{Sink: "file", Op: "dispose", Err: err}
	}
	return nil
}

func (f *File) write(rec *presence.Record) error {
	op := "publish"
	if rec == nil {
		op = "connect"
	}

	data, err := encode(f.appID, rec)
	if err != nil {
		return errors.SinkError{Sink: "file", Op: op, Err: err}
	}
	if err := storage.WriteAtomic(f.path, data); err != nil {
		return errors.SinkError{Sink: "file", Op: op, Err: err}
	}
	return nil
}

// ReadFile returns the message last written to path.
func ReadFile(path string) (Message, error) {
	data, err := storage.ReadLocked(path)
	if err != nil {
		return Message{}, err
	}
	return Decode(data)
}
