// Package install copies the nespan binary into a per-user or system bin
// directory and manages the PATH bookkeeping needed to undo that later.
package install

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nlpkit/nespan/internal/config"
)

// Options controls install behavior.
type Options struct {
	User      bool
	System    bool
	Path      string
	From      string
	DryRun    bool
	AddToPath bool // if true, installer will add target dir to PATH
}

func binName() string {
	if runtime.GOOS == "windows" {
		return "nespan.exe"
	}
	return "nespan"
}

// DefaultUserBin returns a per-user bin directory.
func DefaultUserBin() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "nespan", "bin")
}

// systemBin returns a default system-wide bin directory for the OS.
func systemBin() string {
	if v := os.Getenv("NESPAN_TEST_SYSTEM_BIN"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		return `C:\\Program Files\\nespan`
	}
	return "/usr/local/bin"
}

// PlanInstall returns a list of human-readable actions that would be performed.
func PlanInstall(opts Options) ([]string, string, error) {
	src := opts.From
	if src == "" {
		ex, err := os.Executable()
		if err != nil {
			return nil, "", fmt.Errorf("determine current executable: %w", err)
		}
		src = ex
	}
	targetDir := opts.Path
	if targetDir == "" {
		if opts.System {
			targetDir = systemBin()
		} else {
			targetDir = DefaultUserBin()
		}
	}
	targetPath := filepath.Join(targetDir, binName())

	actions := []string{fmt.Sprintf("Ensure directory exists: %s", targetDir)}
	if src == targetPath {
		actions = append(actions, "No-op: source and destination are identical")
		return actions, targetPath, nil
	}
	actions = append(actions, fmt.Sprintf("Copy %s -> %s", src, targetPath))
	if runtime.GOOS != "windows" {
		actions = append(actions, fmt.Sprintf("Set executable bit on %s", targetPath))
	}
	appendPathHints(&actions, os.Getenv("PATH"), targetDir)
	return actions, targetPath, nil
}

// appendPathHints appends human-friendly PATH hints to actions if the target
// directory is not currently on PATH.
func appendPathHints(actions *[]string, pathEnv, targetDir string) {
	if ContainsPath(pathEnv, targetDir) {
		return
	}
	if runtime.GOOS == "windows" {
		*actions = append(*actions, fmt.Sprintf("Add %s to your user PATH (run: setx PATH \"%%PATH%%;%s\")", targetDir, targetDir))
	} else {
		*actions = append(*actions, fmt.Sprintf("Add 'export PATH=\"%s:$PATH\"' to your shell rc (e.g., ~/.bashrc) or move the binary to a location already on PATH", targetDir))
	}
}

// ContainsPath checks if the given directory is in the PATH environment variable.
func ContainsPath(pathEnv, dir string) bool {
	if pathEnv == "" || dir == "" {
		return false
	}
	dirClean := filepath.Clean(os.ExpandEnv(strings.TrimSpace(dir)))
	for _, p := range filepath.SplitList(pathEnv) {
		pClean := filepath.Clean(os.ExpandEnv(strings.TrimSpace(p)))
		if runtime.GOOS == "windows" {
			if strings.EqualFold(pClean, dirClean) {
				return true
			}
		} else if pClean == dirClean {
			return true
		}
	}
	return false
}

// metadata stores install operations to enable uninstall/rollback
type metadata struct {
	TargetPath  string    `json:"target_path"`
	AddedToPath bool      `json:"added_to_path"`
	PathFile    string    `json:"path_file,omitempty"`
	InstalledAt time.Time `json:"installed_at"`
}

func metadataPath() (string, error) {
	d, err := config.EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "install_metadata.json"), nil
}

func saveMetadata(target string, added bool, pathFile string) error {
	p, err := metadataPath()
	if err != nil {
		return err
	}
	m := metadata{TargetPath: target, AddedToPath: added, PathFile: pathFile, InstalledAt: time.Now()}
	b, _ := json.MarshalIndent(m, "", "  ")
	return os.WriteFile(p, b, 0o600)
}

func loadMetadata() (*metadata, error) {
	p, err := metadataPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var m metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func removeMetadata() error {
	p, err := metadataPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExecuteInstall performs the install actions (creates dirs, copies the
// binary, sets modes, and optionally appends a PATH export).
func ExecuteInstall(opts Options) ([]string, error) {
	actions, targetPath, err := PlanInstall(opts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return actions, nil
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return nil, fmt.Errorf("create target dir: %w", err)
	}
	src, err := resolveSourceExecutable(opts.From)
	if err != nil {
		return nil, fmt.Errorf("determine source executable: %w", err)
	}
	if err := copyExecutable(src, targetPath); err != nil {
		return nil, err
	}

	pathFile := ""
	if opts.AddToPath {
		pathFile, err = addToPath(targetPath, opts.System)
		if err != nil {
			return nil, fmt.Errorf("add to PATH: %w", err)
		}
	}
	if err := saveMetadata(targetPath, opts.AddToPath, pathFile); err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	return actions, nil
}

// resolveSourceExecutable resolves the source path for the install. If from
// is empty it returns the current running executable path.
func resolveSourceExecutable(from string) (string, error) {
	if from != "" {
		if _, err := os.Stat(from); err != nil {
			return "", err
		}
		return from, nil
	}
	return os.Executable()
}

// copyExecutable copies the source file to the destination atomically and
// sets executable permissions on non-Windows platforms.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	tmpFile, terr := os.CreateTemp(filepath.Dir(dst), "nespan_tmp_")
	if terr != nil {
		return fmt.Errorf("create temp dest: %w", terr)
	}
	tmp := tmpFile.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := io.Copy(tmpFile, in); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmp, 0o755); err != nil {
			return fmt.Errorf("set exec bit: %w", err)
		}
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("move into place: %w", err)
	}
	return nil
}

// addToPath records the bin directory on PATH. On Unix a PATH export is
// appended to the user's shell rc; system installs and Windows are left to
// the administrator with a hint instead.
func addToPath(targetPath string, system bool) (string, error) {
	dir := filepath.Dir(targetPath)
	if system || runtime.GOOS == "windows" {
		return "", fmt.Errorf("add %s to PATH manually for this install mode", dir)
	}
	return addToPathUnix(dir)
}

// addToPathUnix appends a PATH export to the appropriate shell rc file and
// returns the file path.
func addToPathUnix(dir string) (string, error) {
	shell := os.Getenv("SHELL")
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}
	rcfile := filepath.Join(home, ".profile")
	// Prefer existing rc files over guessing from $SHELL.
	if _, err := os.Stat(filepath.Join(home, ".bashrc")); err == nil {
		rcfile = filepath.Join(home, ".bashrc")
	} else if _, err := os.Stat(filepath.Join(home, ".zshrc")); err == nil {
		rcfile = filepath.Join(home, ".zshrc")
	} else if strings.Contains(shell, "zsh") {
		rcfile = filepath.Join(home, ".zshrc")
	} else if strings.Contains(shell, "bash") {
		rcfile = filepath.Join(home, ".bashrc")
	}
	line := fmt.Sprintf("# nespan: add %s to PATH\nexport PATH=\"%s:$PATH\"\n", dir, dir)
	f, err := os.OpenFile(rcfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(line); err != nil {
		return "", err
	}
	return rcfile, nil
}

// Status represents the presence of nespan in user and system locations and PATH.
type Status struct {
	UserPath        string
	SystemPath      string
	UserInstalled   bool
	SystemInstalled bool
	UserOnPath      bool
	SystemOnPath    bool
	MetadataFound   bool
}

// GetStatus inspects the system and returns installation status for user and
// system locations.
func GetStatus() (*Status, error) {
	userPath := filepath.Join(DefaultUserBin(), binName())
	sysPath := filepath.Join(systemBin(), binName())
	st := &Status{UserPath: userPath, SystemPath: sysPath}
	if _, err := os.Stat(userPath); err == nil {
		st.UserInstalled = true
	}
	if _, err := os.Stat(sysPath); err == nil {
		st.SystemInstalled = true
	}
	st.UserOnPath = ContainsPath(os.Getenv("PATH"), filepath.Dir(userPath))
	st.SystemOnPath = ContainsPath(os.Getenv("PATH"), filepath.Dir(sysPath))
	if p, err := metadataPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			st.MetadataFound = true
		}
	}
	// PATH membership of the current process may miss rc-file edits; a
	// resolvable binary is authoritative.
	if lp, err := exec.LookPath(binName()); err == nil {
		lpClean := filepath.Clean(lp)
		if lpClean == filepath.Clean(userPath) {
			st.UserOnPath = true
			st.UserInstalled = true
		}
		if lpClean == filepath.Clean(sysPath) {
			st.SystemOnPath = true
			st.SystemInstalled = true
		}
	}
	return st, nil
}

// Uninstall removes the previously installed binary and reverses recorded
// PATH modifications.
func Uninstall(verbose bool) ([]string, error) {
	m, err := loadMetadata()
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	actions := []string{}

	if m.TargetPath != "" {
		if err := os.Remove(m.TargetPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove binary: %w", err)
		}
		actions = append(actions, fmt.Sprintf("Removed %s", m.TargetPath))
	}
	if m.AddedToPath && m.PathFile != "" {
		removed, err := removeUnixPathEntry(m)
		if err != nil {
			return nil, err
		}
		if removed {
			actions = append(actions, fmt.Sprintf("Removed PATH entry from %s", m.PathFile))
		} else if verbose {
			actions = append(actions, fmt.Sprintf("No PATH entry found in %s", m.PathFile))
		}
	}
	if err := removeMetadata(); err != nil {
		return nil, fmt.Errorf("remove metadata: %w", err)
	}
	actions = append(actions, "Removed install metadata")
	return actions, nil
}

// removeUnixPathEntry strips the export lines this installer appended to the
// recorded rc file.
func removeUnixPathEntry(m *metadata) (bool, error) {
	b, err := os.ReadFile(m.PathFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	dir := filepath.Dir(m.TargetPath)
	marker := fmt.Sprintf("# nespan: add %s to PATH", dir)
	export := fmt.Sprintf("export PATH=\"%s:$PATH\"", dir)
	var kept []string
	removed := false
	for _, line := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(line) == marker || strings.TrimSpace(line) == export {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return false, nil
	}
	return true, os.WriteFile(m.PathFile, []byte(strings.Join(kept, "\n")), 0o644)
}

// PlanUninstall returns the actions Uninstall would perform.
func PlanUninstall() ([]string, error) {
	m, err := loadMetadata()
	if err != nil {
		if os.IsNotExist(err) {
			actions := []string{"No install metadata found"}
			for _, p := range []string{filepath.Join(DefaultUserBin(), binName()), filepath.Join(systemBin(), binName())} {
				if _, err := os.Stat(p); err == nil {
					actions = append(actions, fmt.Sprintf("Remove %s", p))
				}
			}
			return actions, nil
		}
		return nil, err
	}
	actions := []string{fmt.Sprintf("Remove %s", m.TargetPath)}
	if m.AddedToPath && m.PathFile != "" {
		actions = append(actions, fmt.Sprintf("Remove PATH entry from %s", m.PathFile))
	}
	actions = append(actions, "Remove install metadata")
	return actions, nil
}
