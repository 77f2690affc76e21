package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultKeywordFile is the default keyword configuration file name.
const DefaultKeywordFile = ".leadspider"

// ErrKeywordFileNotFound is returned when the keyword file does not exist.
var ErrKeywordFileNotFound = errors.New("keyword configuration file not found")

// Keywords holds the three keyword families used to classify discovered
// links into frontier priorities. A link whose URL or anchor text contains
// a staff keyword is visited before contact-page links, which are visited
// before topic links, which are visited before everything else.
//
// Design decision: The original tool hard-coded sports-coaching vocabulary
// into the crawler. We keep those words as built-in defaults but make the
// families loadable from a YAML file, so the same engine can be pointed at
// other verticals without a rebuild.
type Keywords struct {
	// Staff are directory/roster-style keywords, the strongest signal
	// that a page lists people.
	Staff []string `yaml:"staff,omitempty"`

	// Contact are contact/about-page keywords, including common
	// localized variants.
	Contact []string `yaml:"contact,omitempty"`

	// Topic are vertical-specific activity keywords.
	Topic []string `yaml:"topic,omitempty"`
}

// DefaultKeywords returns the built-in keyword families.
// The vocabulary is tuned for sports organizations, the original target
// vertical for this tool.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Staff: []string{
			"coach", "coaches", "staff", "directory", "roster",
			"faculty", "team", "instructors", "trainers", "personnel",
			"leadership", "board",
		},
		Contact: []string{
			"contact", "about", "connect", "reach-us", "get-in-touch",
			"impressum", "kontakt", "contacto", "contatto",
		},
		Topic: []string{
			"hockey", "skating", "rink", "ice", "figure-skating",
			"lessons", "programs", "camps", "clinics", "club",
		},
	}
}

// merge fills empty families in k from def, so a partial YAML file only
// overrides the families it names.
func (k *Keywords) merge(def *Keywords) {
	if len(k.Staff) == 0 {
		k.Staff = def.Staff
	}
	if len(k.Contact) == 0 {
		k.Contact = def.Contact
	}
	if len(k.Topic) == 0 {
		k.Topic = def.Topic
	}
}

// LoadKeywordFile loads keyword families from a YAML file, filling any
// family the file omits from the built-in defaults.
// If the file does not exist it returns ErrKeywordFileNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadKeywordFile(path string) (*Keywords, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeywordFileNotFound
		}
		return nil, err
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, err
	}

	kw.merge(DefaultKeywords())
	return &kw, nil
}

// FindKeywordFile searches for the keyword file in the following order:
//  1. If path is specified, use it directly
//  2. .leadspider in the current directory
//  3. .leadspider in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindKeywordFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdFile := filepath.Join(cwd, DefaultKeywordFile)
		if _, err := os.Stat(cwdFile); err == nil {
			return cwdFile
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeFile := filepath.Join(home, DefaultKeywordFile)
		if _, err := os.Stat(homeFile); err == nil {
			return homeFile
		}
	}

	return ""
}
