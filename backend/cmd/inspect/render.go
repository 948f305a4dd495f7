package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"ghostcheck/backend/internal/analysis"
	"ghostcheck/backend/internal/extract"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	return f == formatText || f == formatJSON || f == formatYAML
}

func writeReport(w io.Writer, format string, r *analysis.Report, limit int) error {
	switch format {
	case formatJSON:
		return writeJSON(w, r)
	case formatYAML:
		return writeYAML(w, r)
	}

	fmt.Fprintf(w, "Source: %s\n", r.Source)
	fmt.Fprintf(w, "Files:  %d JSON files, %d records in %d collections\n\n", len(r.Files), r.TotalRecords(), len(r.Collections))

	if r.Comparison.Ready() {
		fmt.Fprintln(w, "Relationships (following vs followers)")
		for _, c := range r.Comparison.Relationships.Collections() {
			writeCollectionText(w, c, limit)
		}
	} else {
		fmt.Fprintln(w, "Relationships: insufficient data")
		fmt.Fprintf(w, "  %s\n", r.Comparison.Guidance)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Collections")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range r.Collections {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Len())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var problems []string
	for _, d := range r.Diagnostics {
		if d.Level != analysis.LevelInfo {
			problems = append(problems, d.String())
		}
	}
	if len(problems) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Problems")
		for _, p := range problems {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	return nil
}

func writeCollection(w io.Writer, format string, c extract.NamedCollection, limit int) error {
	switch format {
	case formatJSON:
		return writeJSON(w, c)
	case formatYAML:
		return writeYAML(w, c)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "USERNAME\tSINCE\tPROFILE\n")
	for i, rec := range c.Records {
		if limit > 0 && i == limit {
			fmt.Fprintf(tw, "... %d more\t\t\n", c.Len()-limit)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Username, formatTimestamp(rec.EventTimestamp), rec.ProfileURL)
	}
	return tw.Flush()
}

func writeCollectionText(w io.Writer, c extract.NamedCollection, limit int) {
	names := c.Usernames()
	more := 0
	if limit > 0 && len(names) > limit {
		more = len(names) - limit
		names = names[:limit]
	}

	line := fmt.Sprintf("  %-8s %5d", c.Name, c.Len())
	if len(names) > 0 {
		line += "  " + strings.Join(names, ", ")
	}
	if more > 0 {
		line += fmt.Sprintf(" (+%d more)", more)
	}
	fmt.Fprintln(w, line)
}

func formatTimestamp(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
