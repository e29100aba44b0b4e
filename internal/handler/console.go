package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/l1jgo/skirmish/internal/world"
)

// ErrInputClosed is returned once the input stream is exhausted.
var ErrInputClosed = errors.New("input closed")

// ConsoleProvider asks a human for each player's action: it prints the
// numbered opposing side, prompts, and parses the reply. Reading
// blocks until a line arrives.
type ConsoleProvider struct {
	in     *bufio.Scanner
	out    io.Writer
	closed bool
}

func NewConsoleProvider(in io.Reader, out io.Writer) *ConsoleProvider {
	return &ConsoleProvider{in: bufio.NewScanner(in), out: out}
}

func (p *ConsoleProvider) RequestAction(c *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	fmt.Fprintln(p.out, FormatSide(opponents))
	fmt.Fprintf(p.out, "What will %s do? ", c.Name)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return world.Action{}, fmt.Errorf("read action: %w", err)
		}
		p.closed = true
		return world.Action{}, ErrInputClosed
	}
	return ParseAction(p.in.Text())
}

// Closed reports whether the input stream has ended.
func (p *ConsoleProvider) Closed() bool { return p.closed }

// ScriptedProvider replays a fixed list of input lines, one per request.
// Once the script runs out every request yields Repeat.
type ScriptedProvider struct {
	lines []string
	next  int
}

func NewScriptedProvider(lines ...string) *ScriptedProvider {
	return &ScriptedProvider{lines: append([]string(nil), lines...)}
}

func (p *ScriptedProvider) RequestAction(_ *world.Combatant, _ []*world.Combatant) (world.Action, error) {
	if p.next >= len(p.lines) {
		return world.Repeat(), nil
	}
	line := p.lines[p.next]
	p.next++
	return ParseAction(line)
}

// Remaining returns how many scripted lines are left.
func (p *ScriptedProvider) Remaining() int { return len(p.lines) - p.next }
