package parsers

import (
	"io"

	"github.com/username/edavkifolio/src/models"
)

// Parser reads one broker statement export into the three raw record
// streams the converter consumes.
type Parser interface {
	Parse(file io.Reader) (models.StatementData, error)
}
