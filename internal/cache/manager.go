package cache

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"surfglobe/internal/debug"
	"surfglobe/internal/geo"
)

// DefaultTimeout bounds a single dataset download
const DefaultTimeout = 2 * time.Minute

// SpotsFile is an optional user-supplied CSV of extra surf spots in the cache dir
const SpotsFile = "spots.csv"

// Manager handles downloading and caching Natural Earth data
type Manager struct {
	cacheDir string
	client   *http.Client
	files    []DataFile
	out      io.Writer
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name     string // Friendly name
	URL      string // Download URL
	Base     string // Base filename (without extension)
	Optional bool   // If true, failure to download won't stop the app
}

// Natural Earth datasets at 1:110m, plenty for a whole-globe view
var NaturalEarthFiles = []DataFile{
	{
		Name: "Countries",
		URL:  "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip",
		Base: geo.CountriesBase,
	},
	{
		Name:     "Coastlines",
		URL:      "https://naciscdn.org/naturalearth/110m/physical/ne_110m_coastline.zip",
		Base:     geo.CoastlineBase,
		Optional: true,
	},
}

// Option configures a Manager
type Option func(*Manager)

// WithHTTPClient replaces the download client
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

// WithFiles replaces the dataset list
func WithFiles(files []DataFile) Option {
	return func(m *Manager) {
		m.files = files
	}
}

// WithOutput sets where progress messages are printed (default: stdout)
func WithOutput(w io.Writer) Option {
	return func(m *Manager) {
		m.out = w
	}
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.surfglobe/data
func NewManager(cacheDir string, opts ...Option) (*Manager, error) {
	if cacheDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	m := &Manager{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: DefaultTimeout},
		files:    NaturalEarthFiles,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// DefaultDir returns ~/.surfglobe/data
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".surfglobe", "data"), nil
}

// EnsureData ensures all required Natural Earth data is available
// Downloads missing files automatically
// Optional files that fail to download will be skipped with a warning
func (m *Manager) EnsureData(ctx context.Context) error {
	for _, file := range m.files {
		if err := m.ensureFile(ctx, file); err != nil {
			if file.Optional && ctx.Err() == nil {
				fmt.Fprintf(m.out, "Warning: Skipping %s (optional): %v\n", file.Name, err)
				debug.Log("skipping optional dataset %s: %v", file.Name, err)
				continue
			}
			return fmt.Errorf("failed to ensure %s: %w", file.Name, err)
		}
	}

	return nil
}

// Has reports whether a dataset's shapefile is already cached
func (m *Manager) Has(base string) bool {
	_, err := os.Stat(m.GetDataPath(base))
	return err == nil
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(ctx context.Context, file DataFile) error {
	if m.Has(file.Base) {
		return nil
	}

	fmt.Fprintf(m.out, "Downloading %s...\n", file.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; surfglobe/1.0)")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, file.URL)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}
	if !m.Has(file.Base) {
		return fmt.Errorf("archive did not contain %s.shp", file.Base)
	}

	fmt.Fprintf(m.out, "Downloaded and extracted %s\n", file.Name)
	return nil
}

func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()

		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}

// GetSpotsPath returns the path of the optional extra surf spots CSV
func (m *Manager) GetSpotsPath() string {
	return filepath.Join(m.cacheDir, SpotsFile)
}

// LoadPOIs returns the built-in points of interest plus any spots from the
// cached CSV. A missing CSV is not an error.
func (m *Manager) LoadPOIs() ([]geo.POI, error) {
	pois := geo.PointsOfInterest()

	path := m.GetSpotsPath()
	if _, err := os.Stat(path); err != nil {
		return pois, nil
	}

	extra, err := geo.NewSpotLoader(path).Load()
	if err != nil {
		return pois, err
	}
	debug.Log("loaded %d extra spots from %s", len(extra), path)
	return append(pois, extra...), nil
}
