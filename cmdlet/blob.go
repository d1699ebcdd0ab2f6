package cmdlet

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// File is the path of a file whose content is used as blob.
type File string

// ReadBlob returns the content of a blob parameter given as []byte, string,
// File or io.Reader.
func ReadBlob(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case *string:
		if b == nil {
			return nil, nil
		}
		return []byte(*b), nil
	case File:
		data, err := os.ReadFile(string(b))
		if err != nil {
			return nil, errors.Wrap(err, "reading blob")
		}
		return data, nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, errors.Wrap(err, "reading blob")
		}
		return data, nil
	default:
		return nil, errors.Newf("unsupported blob value of type %T", v)
	}
}
