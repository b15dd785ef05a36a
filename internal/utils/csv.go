package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// StructToCsvHeader takes a struct type and returns the CSV header for it.
// The `csv` tag names a column; untagged fields use the field name and
// fields tagged "-" are skipped.
func StructToCsvHeader(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		if name, ok := columnName(t.Field(i)); ok {
			headers = append(headers, name)
		}
	}
	return headers
}

// WriteToCsvFile creates filePath and writes headers and data to it
func WriteToCsvFile[T any](filePath string, headers []string, data []T) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCsv(file, headers, data)
}

// WriteCsv writes headers and one row per struct in data.
// Slice fields are joined with a semicolon.
func WriteCsv[T any](w io.Writer, headers []string, data []T) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range data {
		row, err := csvRow(headers, reflect.ValueOf(item))
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvRow(headers []string, v reflect.Value) ([]string, error) {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("data must be a slice of structs")
	}

	row := make([]string, len(headers))
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := columnName(t.Field(i))
		if !ok {
			continue
		}
		idx := indexOf(headers, name)
		if idx < 0 {
			continue
		}
		row[idx] = formatField(v.Field(i))
	}
	return row, nil
}

func columnName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag := field.Tag.Get("csv")
	switch tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	default:
		return tag, true
	}
}

func formatField(fieldValue reflect.Value) string {
	if fieldValue.Kind() != reflect.Slice {
		return fmt.Sprintf("%v", fieldValue.Interface())
	}
	values := make([]string, 0, fieldValue.Len())
	for j := 0; j < fieldValue.Len(); j++ {
		values = append(values, fmt.Sprintf("%v", fieldValue.Index(j).Interface()))
	}
	return strings.Join(values, ";")
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
