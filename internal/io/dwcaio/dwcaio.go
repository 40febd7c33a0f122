// Package dwcaio reads dataset directories of unpacked Darwin Core
// Archives.
package dwcaio

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/gnsys"
)

// Locate returns datasets found in immediate subdirectories of baseDir that
// contain meta.xml, sorted by name. Hidden entries are ignored.
func Locate(baseDir string) ([]dwca.Dataset, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		slog.Error("Cannot read base directory", "dir", baseDir, "error", err)
		return nil, err
	}

	var res []dwca.Dataset
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ds := dwca.Dataset{Name: e.Name(), Dir: filepath.Join(baseDir, e.Name())}
		// os.Stat follows symlinks to dataset directories.
		if fi, err := os.Stat(ds.Dir); err != nil || !fi.IsDir() {
			continue
		}
		if exists, _ := gnsys.FileExists(ds.Path(dwca.MetaFile)); exists {
			res = append(res, ds)
		}
	}
	return res, nil
}

// Open returns a dataset from a directory inside of baseDir. Unlike Locate
// it does not require meta.xml.
func Open(baseDir, name string) (dwca.Dataset, error) {
	dir := filepath.Join(baseDir, name)
	res := dwca.Dataset{Name: filepath.Base(dir), Dir: dir}
	fi, err := os.Stat(dir)
	if err != nil {
		return res, err
	}
	if !fi.IsDir() {
		return res, &os.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}
	return res, nil
}

type xmlField struct {
	Index *int   `xml:"index,attr"`
	Term  string `xml:"term,attr"`
}

type xmlTable struct {
	RowType string     `xml:"rowType,attr"`
	Fields  []xmlField `xml:"field"`
}

type xmlArchive struct {
	Core       *xmlTable  `xml:"core"`
	Extensions []xmlTable `xml:"extension"`
}

// ReadMeta parses meta.xml of a dataset. Fields without an index attribute
// (constant defaults) are not columns and are skipped.
func ReadMeta(ds dwca.Dataset) (*dwca.Meta, error) {
	f, err := os.Open(ds.Path(dwca.MetaFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var arc xmlArchive
	if err = xml.NewDecoder(f).Decode(&arc); err != nil {
		return nil, err
	}

	res := dwca.Meta{}
	if arc.Core != nil {
		t := table(*arc.Core)
		res.Core = &t
	}
	for _, v := range arc.Extensions {
		res.Extensions = append(res.Extensions, table(v))
	}
	return &res, nil
}

func table(t xmlTable) dwca.Table {
	res := dwca.Table{RowType: t.RowType}
	for _, v := range t.Fields {
		if v.Index == nil {
			continue
		}
		res.Fields = append(res.Fields, dwca.Field{Term: v.Term, Index: *v.Index})
	}
	return res
}

// Meta returns the descriptor of a dataset. A missing or broken meta.xml
// gives nil, which resolves no columns.
func Meta(ds dwca.Dataset) *dwca.Meta {
	res, err := ReadMeta(ds)
	if err != nil {
		slog.Debug("Cannot read meta.xml", "dataset", ds.Name, "error", err)
		return nil
	}
	return res
}

// Column resolves a term to a column index for the core (dwca.RowCore) or
// the first extension with a row type containing marker.
func Column(ds dwca.Dataset, marker, term string) (int, bool) {
	return Meta(ds).Column(marker, term)
}

// Exists reports if a file of a dataset exists.
func Exists(ds dwca.Dataset, file string) bool {
	exists, _ := gnsys.FileExists(ds.Path(file))
	return exists
}

// Rows calls fn with the fields of every non-empty line after the header.
func Rows(path string, fn func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header := true
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line == "" && err == io.EOF {
			return nil
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case header:
			header = false
		case line != "":
			fn(strings.Split(line, "\t"))
		}
		if err == io.EOF {
			return nil
		}
	}
}

// Header returns column names from the first line of a file.
func Header(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return strings.Split(strings.TrimRight(line, "\r\n"), "\t"), nil
}

// Field returns the trimmed value of a column, or an empty string if the row
// is too short.
func Field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// UniqueValues returns distinct non-empty values of a column in order of
// first appearance. A missing file gives no values.
func UniqueValues(path string, col int) []string {
	var res []string
	seen := make(map[string]struct{})
	err := Rows(path, func(fields []string) {
		v := Field(fields, col)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		res = append(res, v)
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Cannot read file", "path", path, "error", err)
	}
	return res
}

// Identifiers returns unique reference identifiers of a dataset. The bool
// is false if the Reference extension has no identifier column.
func Identifiers(ds dwca.Dataset) ([]string, bool) {
	col, ok := Column(ds, dwca.RowReference, dwca.TermIdentifier)
	if !ok {
		return nil, false
	}
	return UniqueValues(ds.Path(dwca.ReferenceFile), col), true
}
