package device

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Client opens connections to a device.
type Client interface {
	Connect(ctx context.Context, address string, port int) (Conn, error)
}

// Conn is an open connection to one device.
type Conn interface {
	Push(ctx context.Context, localPath, remotePath string) error
	Shell(ctx context.Context, argv ...string) (string, error)
	Close() error
}

// ADB is a Client backed by the adb executable.
type ADB struct {
	Bin    string
	Runner CommandRunner
}

// NewADB returns a client running bin ("adb" when empty).
func NewADB(bin string) *ADB {
	if bin == "" {
		bin = "adb"
	}
	return &ADB{Bin: bin, Runner: ExecRunner{}}
}

// Connect checks that the server at address:port has exactly one device
// ready and returns a connection bound to that server.
func (a *ADB) Connect(ctx context.Context, address string, port int) (Conn, error) {
	c := &adbConn{
		bin:    a.Bin,
		runner: a.Runner,
		global: []string{"-H", address, "-P", strconv.Itoa(port)},
	}

	out, err := c.run(ctx, "get-state")
	state := strings.TrimSpace(string(out))
	if err != nil {
		return nil, &Error{Kind: ErrConnection, Op: "get-state " + address + ":" + strconv.Itoa(port), Output: state, Err: err}
	}
	if state != "device" {
		return nil, &Error{Kind: ErrConnection, Op: "get-state", Output: fmt.Sprintf("device state is %q", state)}
	}
	return c, nil
}

type adbConn struct {
	bin    string
	runner CommandRunner
	global []string
}

func (c *adbConn) run(ctx context.Context, args ...string) ([]byte, error) {
	full := make([]string, 0, len(c.global)+len(args))
	full = append(full, c.global...)
	full = append(full, args...)
	return c.runner.Run(ctx, c.bin, full...)
}

func (c *adbConn) Push(ctx context.Context, localPath, remotePath string) error {
	out, err := c.run(ctx, "push", localPath, remotePath)
	if err != nil {
		return &Error{Kind: ErrTransfer, Op: "push " + localPath, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}

func (c *adbConn) Shell(ctx context.Context, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", &Error{Kind: ErrCommand, Op: "shell", Output: "empty command"}
	}
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellQuote(a)
	}
	out, err := c.run(ctx, append([]string{"shell"}, quoted...)...)
	text := strings.TrimSpace(string(out))
	if err != nil {
		return text, &Error{Kind: ErrCommand, Op: "shell " + argv[0], Output: text, Err: err}
	}
	return text, nil
}

// Close is a no-op: every adb invocation opens its own server session.
func (c *adbConn) Close() error { return nil }

// shellQuote quotes s for the device's /system/bin/sh when needed.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`&|;<>()*?[]{}~#!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
