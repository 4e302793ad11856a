// Package executor runs exporter plugins regardless of their underlying
// protocol (go-plugin RPC or JSON-stdio) and writes the files they return.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/internal/plugin/protocol"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

const (
	infoTimeout   = 5 * time.Second
	exportTimeout = 30 * time.Second
)

// Options configures an Executor.
type Options struct {
	// PluginDir restricts plugins to a directory. Empty allows any path.
	PluginDir string

	// Logger receives executor logs. Plugin process logs are forwarded to
	// it only when Verbose is set.
	Logger  hclog.Logger
	Verbose bool

	// Runner executes JSON-stdio plugins and the info query.
	Runner ProcessRunner
}

// Executor runs a single exporter plugin.
type Executor struct {
	path    string
	info    plugin.PluginInfo
	logger  hclog.Logger
	verbose bool
	runner  ProcessRunner

	client   *goplugin.Client
	exporter plugin.Exporter

	// dispense connects to a go-plugin exporter. Tests replace it.
	dispense func() (plugin.Exporter, error)
}

// New validates pluginPath, queries its metadata and checks the protocol
// version. Go-plugin processes are started lazily on first Export.
func New(ctx context.Context, pluginPath string, opts Options) (*Executor, error) {
	if err := security.ValidatePluginPath(pluginPath, opts.PluginDir); err != nil {
		return nil, err
	}

	info, err := os.Stat(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("plugin not found: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("plugin is not an executable file: %s", pluginPath)
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	runner := opts.Runner
	if runner == nil {
		runner = NewRealProcessRunner()
	}

	e := &Executor{
		path:    pluginPath,
		logger:  logger.Named("plugin"),
		verbose: opts.Verbose,
		runner:  runner,
	}
	e.dispense = e.connect

	if e.info, err = e.queryInfo(ctx); err != nil {
		return nil, err
	}
	if err := protocol.CheckCompatible(e.info.ProtocolVersion); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", e.info.Name, err)
	}

	e.logger.Debug("loaded plugin", "name", e.info.Name, "version", e.info.Version, "protocol", e.info.PluginProtocol)
	return e, nil
}

// Info returns the metadata the plugin reported.
func (e *Executor) Info() plugin.PluginInfo {
	return e.info
}

// Protocol returns the plugin's transport.
func (e *Executor) Protocol() plugin.PluginType {
	return plugin.PluginType(e.info.PluginProtocol)
}

// Export sends the palette to the plugin and returns the files it rendered.
func (e *Executor) Export(ctx context.Context, data plugin.PaletteData) (map[string][]byte, error) {
	switch e.Protocol() {
	case plugin.PluginTypeGoPlugin:
		return e.exportGoPlugin(ctx, data)
	case plugin.PluginTypeJSON:
		return e.exportJSON(ctx, data)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.info.PluginProtocol)
	}
}

// Close stops the plugin process, if one was started.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
	}
	e.exporter = nil
}

func (e *Executor) queryInfo(ctx context.Context) (plugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(ctx, e.path, []string{plugin.InfoFlag}, nil)
	if err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w%s", err, stderrSuffix(stderr))
	}

	var info plugin.PluginInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	switch plugin.PluginType(info.PluginProtocol) {
	case plugin.PluginTypeGoPlugin, plugin.PluginTypeJSON:
	case "":
		// Scripts that omit the field speak JSON.
		info.PluginProtocol = string(plugin.PluginTypeJSON)
	default:
		return plugin.PluginInfo{}, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = plugin.ProtocolVersion
	}
	if info.Name == "" {
		return plugin.PluginInfo{}, fmt.Errorf("plugin info has no name")
	}
	return info, nil
}

// --- Go-Plugin RPC ---

func (e *Executor) connect() (plugin.Exporter, error) {
	logger := hclog.New(&hclog.LoggerOptions{Name: "plugin", Level: hclog.Off})
	if e.verbose {
		logger = e.logger
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(),
		Cmd:              exec.Command(e.path), // #nosec G204 - plugin path validated in New
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.ExporterName)
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	exp, ok := raw.(plugin.Exporter)
	if !ok {
		e.client.Kill()
		return nil, fmt.Errorf("plugin dispensed %T, not an exporter", raw)
	}
	return exp, nil
}

func (e *Executor) exportGoPlugin(ctx context.Context, data plugin.PaletteData) (map[string][]byte, error) {
	if e.exporter == nil {
		exp, err := e.dispense()
		if err != nil {
			return nil, err
		}
		e.exporter = exp
	}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	// net/rpc calls ignore ctx, so the call runs aside and a stuck plugin
	// process is killed at the deadline.
	type result struct {
		files map[string][]byte
		err   error
	}
	done := make(chan result, 1)
	exp := e.exporter
	go func() {
		files, err := exp.Export(ctx, data)
		done <- result{files, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("plugin %s export failed: %w", e.info.Name, r.err)
		}
		return r.files, nil
	case <-ctx.Done():
		e.logger.Warn("plugin export timed out, killing plugin", "plugin", e.info.Name)
		e.Close()
		return nil, fmt.Errorf("plugin %s export failed: %w", e.info.Name, ctx.Err())
	}
}

// --- JSON-stdio ---

// jsonReply is what JSON-stdio exporters print: file contents by name.
type jsonReply struct {
	Files map[string]string `json:"files"`
}

func (e *Executor) exportJSON(ctx context.Context, data plugin.PaletteData) (map[string][]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}
	if len(stderr) > 0 {
		e.logger.Debug("plugin stderr", "output", strings.TrimSpace(string(stderr)))
	}

	var reply jsonReply
	if err := json.Unmarshal(stdout, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse plugin output: %w", err)
	}

	files := make(map[string][]byte, len(reply.Files))
	for name, content := range reply.Files {
		files[name] = []byte(content)
	}
	return files, nil
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return "\nStderr: " + msg
}
