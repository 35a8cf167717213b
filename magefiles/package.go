//go:build mage

package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
)

type Package mg.Namespace

// sampleConfig ships with the archive so users can see every setting.
const sampleConfig = `# remesh configuration
# Copy to $XDG_CONFIG_HOME/remesh/config.toml (~/.config/remesh/config.toml)

executable_path = "/path/to/instant-meshes/Instant Meshes"
run_timeout_seconds = 300
probe_timeout_seconds = 5
keep_failed_runs = 5
log_level = "info"

[defaults]
target_count = 5000
count_mode = "faces"
preserve_sharp = true
align_boundaries = true
deterministic = false
crease_angle = 30.0
`

// Builds a distributable zip: the binary plus a sample config file.
func (Package) Dist() error {
	mg.Deps(Build.Binary)

	if err := os.MkdirAll("dist", 0o755); err != nil {
		return err
	}
	version, err := gitVersion()
	if err != nil {
		version = "0.0.0-dev"
	}
	name := fmt.Sprintf("dist/%s-%s-%s-%s.zip", binaryName, version, runtime.GOOS, runtime.GOARCH)

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	if err := addFileToZip(zw, filepath.Join("bin", binaryName), binaryName); err != nil {
		return err
	}
	w, err := zw.Create("config_sample.toml")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, sampleConfig); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	fmt.Println("Packaged " + name)
	return nil
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
