package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Downloads the per-status list exports for one user and writes them as
// JSON files the importer consumes. Only the three buckets the upstream
// exposes through this endpoint are fetched.
var statusFiles = []struct {
	status int
	name   string
}{
	{1, "curr_read.json"},
	{2, "completed.json"},
	{6, "ptr.json"},
}

func fetchList(username string, status int) ([]json.RawMessage, error) {
	url := fmt.Sprintf("https://myanimelist.net/mangalist/%s/load.json?status=%d&offset=0", username, status)
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch status %d: %w", status, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch status %d: http %s", status, resp.Status)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse status %d response: %w", status, err)
	}
	return list, nil
}

func writeJSON(path string, v any) error {
	j, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, j, 0644)
}

func main() {
	outDir := flag.String("out", "MALlists", "output directory")
	username := flag.String("user", os.Getenv("MAL_USER"), "list username")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "no username: pass -user or set MAL_USER")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var all []json.RawMessage
	for _, sf := range statusFiles {
		list, err := fetchList(*username, sf.status)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, sf.name)
		if err := writeJSON(path, list); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d entries -> %s\n", len(list), path)
		all = append(all, list...)
	}

	allPath := filepath.Join(*outDir, "all_lists.json")
	if err := writeJSON(allPath, all); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d entries -> %s\n", len(all), allPath)
}
