// Package scraper provides functionality to fetch scorecard pages and download files
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// UserAgent is sent with every request; the scorecard site rejects unknown clients
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client is the HTTP client used for all fetches
var Client = &http.Client{
	Timeout: 30 * time.Second,
}

func get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching URL: %w", err)
	}

	log.Debug("HTTP response", "status", resp.StatusCode, "url", url)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch page: %s", resp.Status)
	}
	return resp, nil
}

// FetchURL downloads the HTML content from a URL and returns it as a string
func FetchURL(url string) (string, error) {
	log.Info("Fetching URL", "url", url)

	resp, err := get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	log.Debug("Fetched page",
		"contentType", resp.Header.Get("Content-Type"),
		"bytes", len(body))

	return string(body), nil
}

// DownloadFile downloads a file from a URL and saves it locally
func DownloadFile(url string, localPath string) error {
	log.Info("Downloading file", "url", url, "path", localPath)

	resp, err := get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}
