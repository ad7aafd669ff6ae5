// Package mcpclient registers the vaudit MCP server in the config files of
// desktop MCP clients (Claude Desktop, Cursor, Windsurf).
package mcpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aidanlsb/vaudit/internal/atomicfile"
)

// ServerName is the key of the vaudit entry under "mcpServers".
const ServerName = "vaudit"

const serversKey = "mcpServers"

// Client identifies an MCP client application.
type Client string

const (
	ClaudeDesktop Client = "claude-desktop"
	Cursor        Client = "cursor"
	Windsurf      Client = "windsurf"
)

// Clients returns every supported client.
func Clients() []Client {
	return []Client{ClaudeDesktop, Cursor, Windsurf}
}

// ParseClient parses a client name.
func ParseClient(name string) (Client, error) {
	c := Client(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Clients() {
		if c == known {
			return c, nil
		}
	}
	names := make([]string, 0, len(Clients()))
	for _, known := range Clients() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown client %q (expected one of: %s)", name, strings.Join(names, ", "))
}

// ConfigPath returns the config file of client under homeDir.
// An empty homeDir means the current user's home.
func ConfigPath(client Client, homeDir string) (string, error) {
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}

	switch client {
	case ClaudeDesktop:
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
		case "windows":
			return filepath.Join(homeDir, "AppData", "Roaming", "Claude", "claude_desktop_config.json"), nil
		}
		return filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json"), nil
	case Cursor:
		return filepath.Join(homeDir, ".cursor", "mcp.json"), nil
	case Windsurf:
		return filepath.Join(homeDir, ".codeium", "windsurf", "mcp_config.json"), nil
	default:
		return "", fmt.Errorf("unknown client: %s", client)
	}
}

// Entry is an MCP server launch command.
type Entry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// NewEntry returns the entry that serves the vault at vaultPath with the
// running binary.
func NewEntry(vaultPath string) Entry {
	return Entry{
		Command: executable(),
		Args:    []string{"serve", vaultPath},
	}
}

func executable() string {
	exe, err := os.Executable()
	if err != nil {
		return ServerName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

func (e Entry) equal(other Entry) bool {
	if e.Command != other.Command || len(e.Args) != len(other.Args) {
		return false
	}
	for i := range e.Args {
		if e.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// Action describes what Install did.
type Action int

const (
	Added Action = iota
	Updated
	Unchanged
)

func (a Action) String() string {
	switch a {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// clientConfig is a client config file. Keys other than the vaudit entry
// are preserved as read.
type clientConfig struct {
	path string
	data map[string]interface{}
}

// readConfig reads path. A missing file yields an empty config.
func readConfig(path string) (*clientConfig, bool, error) {
	cfg := &clientConfig{path: path, data: map[string]interface{}{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, true, nil
	}
	if err := json.Unmarshal(raw, &cfg.data); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.data == nil {
		cfg.data = map[string]interface{}{}
	}
	return cfg, true, nil
}

// servers returns the "mcpServers" object, creating it when create is set.
func (c *clientConfig) servers(create bool) map[string]interface{} {
	if m, ok := c.data[serversKey].(map[string]interface{}); ok {
		return m
	}
	if !create {
		return nil
	}
	m := map[string]interface{}{}
	c.data[serversKey] = m
	return m
}

func (c *clientConfig) entry() (Entry, bool) {
	raw, ok := c.servers(false)[ServerName].(map[string]interface{})
	if !ok {
		return Entry{}, false
	}

	var e Entry
	e.Command, _ = raw["command"].(string)
	if args, ok := raw["args"].([]interface{}); ok {
		for _, a := range args {
			if s, ok := a.(string); ok {
				e.Args = append(e.Args, s)
			}
		}
	}
	return e, true
}

func (c *clientConfig) write() error {
	out, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicfile.WriteFile(c.path, out, 0)
}

// Install adds or replaces the vaudit entry in the config file at path.
func Install(path string, entry Entry) (Action, error) {
	cfg, _, err := readConfig(path)
	if err != nil {
		return 0, err
	}

	action := Added
	if existing, ok := cfg.entry(); ok {
		if existing.equal(entry) {
			return Unchanged, nil
		}
		action = Updated
	}

	cfg.servers(true)[ServerName] = map[string]interface{}{
		"command": entry.Command,
		"args":    entry.Args,
	}
	return action, cfg.write()
}

// Remove deletes the vaudit entry from the config file at path and reports
// whether there was one.
func Remove(path string) (bool, error) {
	cfg, exists, err := readConfig(path)
	if err != nil || !exists {
		return false, err
	}
	if _, ok := cfg.entry(); !ok {
		return false, nil
	}

	servers := cfg.servers(false)
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(cfg.data, serversKey)
	}
	return true, cfg.write()
}

// Status reports whether vaudit is registered with one client.
type Status struct {
	Client     Client `json:"client"`
	ConfigPath string `json:"config_path"`
	Exists     bool   `json:"exists"`
	Installed  bool   `json:"installed"`
	Entry      *Entry `json:"entry,omitempty"`
}

// Check returns the registration status for client from the config at path.
func Check(client Client, path string) (*Status, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	st := &Status{Client: client, ConfigPath: path, Exists: exists}
	if e, ok := cfg.entry(); ok {
		st.Installed = true
		st.Entry = &e
	}
	return st, nil
}
