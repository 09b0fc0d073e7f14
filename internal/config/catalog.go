package config

import (
	"fmt"
	"os"

	"github.com/handiism/exercices-downloader/internal/model"
	"gopkg.in/yaml.v3"
)

const filesBase = "https://www.ecoles.com.tn/sites/default/files/devoirs/files/"

// DefaultCatalog returns the built-in table of 9th grade national exam papers.
func DefaultCatalog() *model.Catalog {
	return &model.Catalog{Years: []model.Year{
		{
			Label: "9éme année en 2023",
			Subjects: []model.Subject{
				{Name: "Mathématiques", URLs: files("concours_9eme_2023_math.pdf")},
				{Name: "Science", URLs: files("concours_9eme_2023_svt.pdf")},
				{Name: "Francais", URLs: files("concours_9eme_2023_francais.pdf")},
				{Name: "Arabe", URLs: files("concours_9eme_2023_arabe.pdf")},
				{Name: "Anglais", URLs: files("concours_9eme_anglais_0.pdf")},
			},
		},
		{
			Label: "9éme année en 2022",
			Subjects: []model.Subject{
				{Name: "Anglais", URLs: files("concours-9eme-2022-anglais.pdf")},
				{Name: "Science", URLs: files("concours-9eme-2022-svt.pdf")},
				{Name: "Arabe", URLs: files("concours-9eme-2022-arabe.pdf")},
				{Name: "Francais", URLs: files("concours-9eme-2022-francais.pdf")},
				{Name: "Mathématiques", URLs: files("concours-9eme-2022-math.pdf")},
			},
		},
		{
			Label: "9éme année en 2021",
			Subjects: []model.Subject{
				{Name: "Mathématiques", URLs: files(
					"concours_9eme_2021_francais_corrige.pdf",
					"concours_9eme_math.pdf",
				)},
				{Name: "Anglais", URLs: files("concours_9eme_anglais_corrige.pdf")},
				{Name: "Science", URLs: files("concours_9eme_svt.pdf")},
				{Name: "Francais", URLs: files("concours_9eme_2021_francais.pdf")},
			},
		},
	}}
}

func files(names ...string) []string {
	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = filesBase + name
	}
	return urls
}

// LoadCatalog reads a catalog from a YAML file.
//
// An empty path returns DefaultCatalog. The file has the same shape as
// model.Catalog:
//
//	years:
//	  - label: "2023"
//	    subjects:
//	      - name: Mathématiques
//	        urls:
//	          - https://example.com/devoirs/math-t1
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return &catalog, nil
}
