package term

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	qrcode "github.com/skip2/go-qrcode"
)

// Clipboard copies through the system clipboard and, when a writer is
// set, also prints a scannable QR code of the copied link so the
// share flow works over SSH where no clipboard exists.
type Clipboard struct {
	QR io.Writer
}

// Copy writes text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if c.QR != nil {
		if png, err := qrcode.New(text, qrcode.Medium); err == nil {
			fmt.Fprint(c.QR, png.ToSmallString(false))
		}
	}
	return clipboard.WriteAll(text)
}
