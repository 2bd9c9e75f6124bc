package listing

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Dismissed is the set of listings the user asked never to see again.
type Dismissed struct {
	Items []*DismissedListing
}

type DismissedListing struct {
	ID          string
	Link        string
	Company     string
	DismissedAt time.Time
}

// ToDismissed converts every listing into a dismissal stamped with the current time.
func (l *Listings) ToDismissed() *Dismissed {
	dismissed := &Dismissed{}
	for _, item := range l.Items {
		dismissed.Items = append(dismissed.Items, &DismissedListing{
			ID:          item.ID,
			Link:        item.Link,
			Company:     item.Company,
			DismissedAt: time.Now().UTC(),
		})
	}
	return dismissed
}

// LoadDismissed reads a dismissed-listings file. A missing or empty file is an empty set.
func LoadDismissed(path string) (*Dismissed, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Dismissed{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Dismissed{}, nil
	}

	var dismissed Dismissed
	if err := json.NewDecoder(file).Decode(&dismissed); err != nil {
		return nil, err
	}
	return &dismissed, nil
}

func (d *Dismissed) Append(other *Dismissed) {
	d.Items = append(d.Items, other.Items...)
}

// IDs returns the dismissed listing ids in file order.
func (d *Dismissed) IDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (d *Dismissed) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
