// Package export writes fetched market data to disk as JSON, CSV or
// MessagePack. Format selection follows the file extension; parent
// directories are created as needed.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

// Result describes a completed export.
type Result struct {
	Status          string   `json:"status"`
	FilePath        string   `json:"file_path"`
	RecordsExported int      `json:"records_exported"`
	FileSizeBytes   int64    `json:"file_size_bytes"`
	Columns         []string `json:"columns,omitempty"`
	Format          string   `json:"format"`
}

// Write picks the output format from the file extension.
func Write(data any, path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON(data, path)
	case ".csv":
		return WriteCSV(data, path)
	case ".msgpack":
		return WriteMsgpack(data, path)
	default:
		return nil, exchange.Validationf("unsupported file extension %q, supported formats: .json, .csv, .msgpack", filepath.Ext(path))
	}
}

// WriteJSON writes data as indented JSON. Slices count one record per
// element; anything else counts as a single record.
func WriteJSON(data any, path string) (*Result, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	if err := writeFile(path, raw); err != nil {
		return nil, err
	}
	return finish(path, recordCount(data), "json", nil)
}

// WriteMsgpack writes data in MessagePack form.
func WriteMsgpack(data any, path string) (*Result, error) {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("export: encode msgpack: %w", err)
	}
	if err := writeFile(path, raw); err != nil {
		return nil, err
	}
	return finish(path, recordCount(data), "msgpack", nil)
}

// WriteCSV writes a slice of records as CSV. Columns come from the
// element struct's json tags, in declaration order.
func WriteCSV(data any, path string) (*Result, error) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return nil, exchange.Validationf("CSV export requires a slice of records")
	}
	if v.Len() == 0 {
		return nil, exchange.Validationf("cannot export empty data to CSV")
	}

	elem := v.Index(0)
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, exchange.Validationf("CSV export requires struct records, got %s", elem.Kind())
	}
	fields, columns := csvColumns(elem.Type())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("export: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	record := make([]string, len(fields))
	for i := 0; i < v.Len(); i++ {
		row := v.Index(i)
		for row.Kind() == reflect.Pointer {
			row = row.Elem()
		}
		for j, idx := range fields {
			record[j] = formatValue(row.Field(idx))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}

	return finish(path, v.Len(), "csv", columns)
}

// Filename builds the conventional export name,
// exchange_dataType[_symbol]_timestamp.ext.
func Filename(exchangeName, dataType, symbol, ext string) string {
	parts := []string{exchangeName, dataType}
	if symbol != "" {
		parts = append(parts, symbol)
	}
	parts = append(parts, time.Now().Format("20060102_150405"))
	return strings.Join(parts, "_") + "." + ext
}

func writeFile(path string, raw []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func finish(path string, records int, format string, columns []string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("export: stat %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	logx.Infof("export: wrote %d records to %s (%d bytes)", records, path, info.Size())
	return &Result{
		Status:          "success",
		FilePath:        abs,
		RecordsExported: records,
		FileSizeBytes:   info.Size(),
		Columns:         columns,
		Format:          format,
	}, nil
}

func recordCount(data any) int {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}
	return 1
}

func csvColumns(t reflect.Type) (fields []int, columns []string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, i)
		columns = append(columns, name)
	}
	return fields, columns
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		raw, err := json.Marshal(v.Interface())
		if err != nil {
			return fmt.Sprint(v.Interface())
		}
		return string(raw)
	}
}
