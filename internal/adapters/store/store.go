// Package store implements ports.ResultStore on the local filesystem.
//
// Layout, relative to the configured root:
//
//	<root>/<domain>/subdomains.txt   one host per line
//	<root>/<domain>/live.txt         one host per line
//	<root>/<domain>/analysis.json    JSON array, 2-space indent
//	<root>/<domain>/screenshots/     image files written by gowitness
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"byakugan/internal/core/domain"
	"byakugan/internal/platform/errors"
	"byakugan/internal/platform/logx"
)

// DefaultRoot es el directorio de salida por defecto.
const DefaultRoot = "output"

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// FileStore guarda los artefactos bajo root/<domain>/.
// Sin locking: un proceso por dominio a la vez.
type FileStore struct {
	root   string
	logger logx.Logger
}

// New crea un FileStore; root vacío usa DefaultRoot.
func New(root string, logger logx.Logger) *FileStore {
	if root == "" {
		root = DefaultRoot
	}
	return &FileStore{root: root, logger: logger.With("component", "store")}
}

// Root retorna el directorio raíz.
func (s *FileStore) Root() string {
	return s.root
}

// DomainDir retorna (y crea) el directorio del dominio.
func (s *FileStore) DomainDir(domainName string) (string, error) {
	if err := checkDomainName(domainName); err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, domainName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create output directory %s", dir)
	}
	return dir, nil
}

// Path retorna la ruta de un artefacto sin crear nada.
func (s *FileStore) Path(domainName string, kind domain.ArtifactKind) string {
	return filepath.Join(s.root, domainName, kind.FileName())
}

// Exists indica si el artefacto está presente y no vacío.
// Las capturas cuentan solo si hay al menos una imagen.
func (s *FileStore) Exists(domainName string, kind domain.ArtifactKind) bool {
	if checkDomainName(domainName) != nil || !kind.IsValid() {
		return false
	}

	path := s.Path(domainName, kind)
	if kind == domain.ArtifactScreenshots {
		return hasImage(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// LoadHosts lee subdomains.txt o live.txt; recorta espacios y descarta vacías.
func (s *FileStore) LoadHosts(domainName string, kind domain.ArtifactKind) ([]string, error) {
	if err := checkHostKind(kind); err != nil {
		return nil, err
	}
	if err := checkDomainName(domainName); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(domainName, kind))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", kind.FileName())
	}

	hosts := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if h := strings.TrimSpace(scanner.Text()); h != "" {
			hosts = append(hosts, h)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "parse %s", kind.FileName())
	}
	return hosts, nil
}

// SaveHosts escribe una línea por host con salto de línea final.
func (s *FileStore) SaveHosts(domainName string, kind domain.ArtifactKind, hosts []string) error {
	if err := checkHostKind(kind); err != nil {
		return err
	}
	dir, err := s.DomainDir(domainName)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, h := range hosts {
		buf.WriteString(h)
		buf.WriteByte('\n')
	}

	path := filepath.Join(dir, kind.FileName())
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	s.logger.Debug("artifact saved", "path", path, "hosts", len(hosts))
	return nil
}

// LoadReport lee analysis.json.
func (s *FileStore) LoadReport(domainName string) (domain.AnalysisReport, error) {
	if err := checkDomainName(domainName); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(domainName, domain.ArtifactAnalysis))
	if err != nil {
		return nil, errors.Wrap(err, "load analysis.json")
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(err, "decode analysis.json")
	}
	return report, nil
}

// SaveReport escribe el reporte completo en una sola escritura.
func (s *FileStore) SaveReport(domainName string, report domain.AnalysisReport) error {
	dir, err := s.DomainDir(domainName)
	if err != nil {
		return err
	}
	if report == nil {
		report = domain.AnalysisReport{}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode analysis report")
	}
	data = append(data, '\n')

	path := filepath.Join(dir, domain.ArtifactAnalysis.FileName())
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	s.logger.Debug("artifact saved", "path", path, "records", len(report))
	return nil
}

// ScreenshotDir retorna (y crea) el directorio de capturas.
func (s *FileStore) ScreenshotDir(domainName string) (string, error) {
	dir, err := s.DomainDir(domainName)
	if err != nil {
		return "", err
	}
	shots := filepath.Join(dir, domain.ArtifactScreenshots.FileName())
	if err := os.MkdirAll(shots, 0o755); err != nil {
		return "", errors.Wrapf(err, "create screenshot directory %s", shots)
	}
	return shots, nil
}

// writeAtomic escribe a un temporal en el mismo directorio y renombra,
// así un proceso interrumpido nunca deja un artefacto a medias.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "sync %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "chmod %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename into %s", path)
	}
	return nil
}

func hasImage(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			return true
		}
	}
	return false
}

func checkHostKind(kind domain.ArtifactKind) error {
	if kind != domain.ArtifactSubdomains && kind != domain.ArtifactLive {
		return errors.Wrapf(domain.ErrUnknownArtifact, "%q is not a host list", kind)
	}
	return nil
}

// el dominio es un componente de ruta: nada de separadores ni "..".
func checkDomainName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Wrapf(domain.ErrInvalidDomain, "unusable directory name %q", name)
	}
	return nil
}
