// SPDX-License-Identifier: MPL-2.0

package vectors

import (
	"fmt"
	"os"

	"github.com/bocukit/bocu1/internal/cueutil"
)

// Load reads a corpus file, choosing the format from its extension.
func Load(path string) (*Corpus, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > cueutil.DefaultMaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, info.Size(), cueutil.DefaultMaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, path)
}
