package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
	"student-performance-go/models"
)

// ImportStudentsFromExcel reads an Excel file stream and creates one student per row.
//
// The first sheet is used and its first row is treated as a header.
// Columns: A name, B email, C class name, D roll number.
func ImportStudentsFromExcel(ctx context.Context, store DocumentStore, file io.Reader) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		log.Printf("Error opening Excel reader: %v", err)
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Printf("Error getting rows from sheet '%s': %v", sheetName, err)
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	studentsToAdd := []models.StudentCreate{}
	for i, row := range rows {
		if i == 0 {
			continue // Skip header row
		}
		student := models.StudentCreate{
			Name:      cell(row, 0),
			Email:     cell(row, 1),
			ClassName: cell(row, 2),
			RollNo:    cell(row, 3),
		}
		if student.Name == "" {
			log.Printf("Skipping row %d due to missing name", i+1)
			continue
		}
		studentsToAdd = append(studentsToAdd, student)
	}

	log.Printf("Attempting to add %d students from Excel file", len(studentsToAdd))
	importedCount := 0
	for _, student := range studentsToAdd {
		doc, err := ToDocument(student)
		if err != nil {
			return importedCount, err
		}
		if _, err := store.CreateDocument(ctx, models.StudentCollection, doc); err != nil {
			return importedCount, fmt.Errorf("error adding student %s: %w", student.Name, err)
		}
		importedCount++
	}

	log.Printf("Successfully imported %d students", importedCount)
	return importedCount, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
