// Package hostconfig adapts a top-level parameter-framework configuration written for the
// target to the host the settings are generated on.
package hostconfig

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/domaingen/internal/xmltok"
	"github.com/aretw0/domaingen/pkg/domain"
)

// TempPattern names the rewritten copies.
const TempPattern = "TMPdomainGeneratorPFConfig_*.xml"

const (
	attrTuning = "TuningAllowed"
	attrPath   = "Path"

	elemStructure       = "StructureDescriptionFileLocation"
	elemSettingsConf    = "SettingsConfiguration"
	elemDomainsLocation = "ConfigurableDomainsFileLocation"
)

// Rewrite copies a top-level configuration from in to out with tuning allowed on the root
// element, and with relative structure and domains file locations rebased onto structDir.
func Rewrite(in io.Reader, out io.Writer, structDir string) error {
	return xmltok.Rewrite(in, out, func(ancestors []xml.Name, el *xml.StartElement) {
		switch {
		case len(ancestors) == 0:
			xmltok.SetAttr(el, attrTuning, "true")
		case len(ancestors) == 1 && el.Name.Local == elemStructure:
			rebase(el, structDir)
		case len(ancestors) == 2 && ancestors[1].Local == elemSettingsConf && el.Name.Local == elemDomainsLocation:
			rebase(el, structDir)
		}
	})
}

func rebase(el *xml.StartElement, dir string) {
	p, ok := xmltok.Attr(*el, attrPath)
	if !ok || p == "" || filepath.IsAbs(p) {
		return
	}
	xmltok.SetAttr(el, attrPath, filepath.Join(dir, p))
}

// InstallDir returns the directory of the real (symlink-resolved) top-level file.
func InstallDir(toplevel string) (string, error) {
	resolved, err := filepath.EvalSymlinks(toplevel)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

// WriteTemp rewrites toplevel into a new temporary file in tmpDir (os.TempDir when empty).
// cleanup removes the file and is safe to call more than once.
func WriteTemp(toplevel, tmpDir string) (path string, cleanup func(), err error) {
	dir, err := InstallDir(toplevel)
	if err != nil {
		return "", nil, &domain.InputFormatError{File: toplevel, Reason: "cannot resolve top-level configuration", Err: err}
	}
	in, err := os.Open(toplevel)
	if err != nil {
		return "", nil, &domain.InputFormatError{File: toplevel, Reason: "cannot open top-level configuration", Err: err}
	}
	defer in.Close()

	tmp, err := os.CreateTemp(tmpDir, TempPattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temporary configuration: %w", err)
	}
	cleanup = func() { _ = os.Remove(tmp.Name()) }

	if err := Rewrite(in, tmp, dir); err != nil {
		_ = tmp.Close()
		cleanup()
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			return "", nil, &domain.InputFormatError{File: toplevel, Line: se.Line, Reason: "malformed XML", Err: err}
		}
		return "", nil, fmt.Errorf("rewrite %s: %w", toplevel, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temporary configuration: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
