// Package config provides configuration management for exercices-downloader.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - The built-in catalog of exercise URLs and optional catalog files
//   - Conversion to http.ClientConfig and a classifier for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Exercices
//	// 5 retries, backoff factor 1s, retry on 500/502/503/504
//	// 3s connect timeout, 30s read timeout
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Catalog
//
//	catalog, err := config.LoadCatalog("") // built-in table
//	catalog, err := config.LoadCatalog("/path/to/catalog.yaml")
package config
