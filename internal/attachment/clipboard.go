package attachment

import (
	"sync"

	"github.com/pkg/errors"
	"golang.design/x/clipboard"
)

var clipboardInit sync.Once

// FromClipboard validates the image currently held on the system clipboard.
func FromClipboard() (*Candidate, error) {
	var initErr error
	clipboardInit.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return nil, errors.Wrap(initErr, "initializing clipboard")
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, errors.New("không có ảnh trong clipboard")
	}
	return FromBytes("clipboard", data)
}
