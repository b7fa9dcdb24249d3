package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const utf8BOM = "\ufeff"

// Read выбирает формат по расширению имени файла: .html/.htm или CSV.
func Read(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return ReadHTML(r)
	default:
		return ReadCSV(r)
	}
}

func ReadCSV(r io.Reader) ([][]string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}
	body = bytes.TrimPrefix(body, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}

	return rows, nil
}

// ReadHTML читает первую таблицу документа (выгрузка таблицы "как веб-страница").
func ReadHTML(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table in document")
	}

	rows := make([][]string, 0, 64)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0, 8)
		tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, cells)
	})

	return rows, nil
}
