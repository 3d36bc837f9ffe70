// scanner/lines.go
package scanner

import (
	"bufio"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/alexferrari88/minigrep/utils"
)

// LineSource produces one line per call without its terminator. End of input
// is reported as io.EOF; any other error is a read failure.
type LineSource interface {
	ReadLine() (string, error)
}

// Opener turns a path into a LineSource. The returned Closer releases it.
type Opener interface {
	Open(path string) (LineSource, io.Closer, error)
}

// OSOpener opens files from the local filesystem.
type OSOpener struct{}

func (OSOpener) Open(path string) (LineSource, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewLineReader(f), f, nil
}

type lineReader struct {
	r *bufio.Reader
}

// NewLineReader reads lines of any length from r. Lines that are not valid
// UTF-8 fail with ErrInvalidUTF8.
func NewLineReader(r io.Reader) LineSource {
	return &lineReader{r: bufio.NewReaderSize(r, DefaultLineBufferSize)}
}

func (lr *lineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil {
		// A final line without a terminator is still a line; io.EOF comes on the next call.
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return utils.TrimLineEnding(line), nil
}
