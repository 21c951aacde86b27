package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileSource reads recipients from a JSON file holding an array of objects
// with email, name, role, location and skills fields. The file is re-read on
// every scan so edits take effect without a restart.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Recipients loads and parses the file. Entries without an email address are
// dropped.
func (f *FileSource) Recipients(ctx context.Context) ([]*Recipient, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading recipients file: %w", err)
	}

	var raw []struct {
		Email    string   `json:"email"`
		Name     string   `json:"name"`
		Role     string   `json:"role"`
		Location string   `json:"location"`
		Skills   []string `json:"skills"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing recipients file: %w", err)
	}

	recipients := make([]*Recipient, 0, len(raw))
	for _, r := range raw {
		email := strings.TrimSpace(r.Email)
		if email == "" {
			continue
		}
		recipients = append(recipients, &Recipient{
			Email:    email,
			Name:     r.Name,
			Role:     r.Role,
			Location: r.Location,
			Skills:   r.Skills,
		})
	}
	return recipients, nil
}
