package parsers

import (
	"fmt"

	"github.com/username/edavkifolio/src/parsers/etoro"
)

func GetParser(source string) (Parser, error) {
	switch source {
	case "etoro":
		return etoro.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
