package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UserProfile holds the declared attributes of the person being audited against.
type UserProfile struct {
	Name           string  `json:"name" mapstructure:"name"`
	CGPA           float64 `json:"cgpa" mapstructure:"cgpa"`
	City           string  `json:"city" mapstructure:"city"`
	Major          string  `json:"major" mapstructure:"major"`
	Year           string  `json:"year" mapstructure:"year"`
	ResumeText     string  `json:"resumeText,omitempty" mapstructure:"-"`
	ResumeFileName string  `json:"resumeFileName,omitempty" mapstructure:"resume-file"`
}

// HasResume reports whether resume text is available for keyword matching.
func (p *UserProfile) HasResume() bool {
	return p != nil && strings.TrimSpace(p.ResumeText) != ""
}

// LoadResume reads plain resume text from ResumeFileName. An unset file name is not an error.
func (p *UserProfile) LoadResume() error {
	path := strings.TrimSpace(p.ResumeFileName)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading resume %q: %w", path, err)
	}

	p.ResumeText = string(data)
	p.ResumeFileName = filepath.Base(path)
	return nil
}

// Empty reports whether no attribute usable for matching is set.
func (p *UserProfile) Empty() bool {
	return p == nil || (p.City == "" && p.Major == "" && p.CGPA == 0 && !p.HasResume())
}
