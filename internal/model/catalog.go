package model

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Catalog is the static table of exercise sources, organized by year and subject.
//
// Years and subjects are ordered slices rather than maps so that a run walks
// the table in the same order every time, which also fixes the Quarter number
// of each URL.
//
// Example:
//
//	catalog := &Catalog{Years: []Year{{
//	    Label: "2023",
//	    Subjects: []Subject{{
//	        Name: "Mathématiques",
//	        URLs: []string{"https://example.com/devoirs/math-t1.html"},
//	    }},
//	}}}
type Catalog struct {
	Years []Year `yaml:"years"`
}

// Year groups the subjects published for one school year.
type Year struct {
	// Label is used verbatim as the year directory name.
	// Example: "9éme année en 2023"
	Label string `yaml:"label"`

	// Subjects lists the subjects of this year in download order.
	Subjects []Subject `yaml:"subjects"`
}

// Subject holds the ordered source URLs for one subject.
type Subject struct {
	// Name is used verbatim as the subject directory name.
	Name string `yaml:"name"`

	// URLs are the listing pages (or direct documents) for this subject.
	// The position of a URL in this list is its Quarter number, starting at 1.
	URLs []string `yaml:"urls"`
}

// Tasks expands the catalog into one Task per source URL, in catalog order.
//
// The root is the output directory; each task's YearDirectory is root/<year label>.
func (c *Catalog) Tasks(root string) []Task {
	var tasks []Task
	for _, year := range c.Years {
		tasks = append(tasks, year.Tasks(root)...)
	}
	return tasks
}

// Directory returns root/<label>.
func (y Year) Directory(root string) string {
	return filepath.Join(root, y.Label)
}

// Tasks returns one Task per source URL of the year, in subject order.
func (y Year) Tasks(root string) []Task {
	yearDir := y.Directory(root)

	var tasks []Task
	for _, subject := range y.Subjects {
		for i, sourceURL := range subject.URLs {
			tasks = append(tasks, Task{
				Year:          y.Label,
				Subject:       subject.Name,
				Quarter:       i + 1,
				SourceURL:     sourceURL,
				YearDirectory: yearDir,
			})
		}
	}
	return tasks
}

// URLCount returns the total number of source URLs in the catalog.
func (c *Catalog) URLCount() int {
	n := 0
	for _, year := range c.Years {
		for _, subject := range year.Subjects {
			n += len(subject.URLs)
		}
	}
	return n
}

// Validate checks that every label can be used as a single directory name and
// that every URL is an absolute http(s) URL.
func (c *Catalog) Validate() error {
	if len(c.Years) == 0 {
		return fmt.Errorf("catalog has no years")
	}

	for _, year := range c.Years {
		if err := validateLabel("year", year.Label); err != nil {
			return err
		}
		for _, subject := range year.Subjects {
			if err := validateLabel("subject", subject.Name); err != nil {
				return fmt.Errorf("%s: %w", year.Label, err)
			}
			for _, raw := range subject.URLs {
				u, err := url.Parse(raw)
				if err != nil {
					return fmt.Errorf("%s/%s: invalid URL %q: %w", year.Label, subject.Name, raw, err)
				}
				if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
					return fmt.Errorf("%s/%s: URL %q must be absolute http(s)", year.Label, subject.Name, raw)
				}
			}
		}
	}

	return nil
}

func validateLabel(kind, label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("empty %s label", kind)
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("%s label %q is not a valid directory name", kind, label)
	}
	return nil
}
