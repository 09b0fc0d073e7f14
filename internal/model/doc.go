// Package model defines the core data structures used throughout
// the exercices-downloader application.
//
// # Catalog
//
// Catalog is the static table of sources, by year and subject:
//
//	tasks := catalog.Tasks("/home/me/Exercices")
//	for _, task := range tasks {
//	    fmt.Println(task.Subject, task.Quarter, task.SourceURL)
//	}
//
// # Task
//
// Task is one source URL together with the directories it writes to:
//
//	task.QuarterDir()                    // .../2023/Science/Quarter 1
//	task.OutputPath(model.Hard, "Série") // .../2023/Science/Quarter 1/hard/Série.pdf
//
// # Attachment
//
// Attachment is a title and link extracted from a listing page.
//
// # Difficulty
//
// Difficulty is one of easy, medium or hard.
package model
