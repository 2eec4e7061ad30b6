package campaign

import "strings"

// Command is an out-of-band request applied between ticks.
type Command string

const (
	CmdRestart Command = "restart"
	CmdMenu    Command = "menu"
	CmdSkip    Command = "skip"  // Jump to the next level
	CmdFinal   Command = "final" // Jump to the guardian encounter
	CmdVirus   Command = "virus" // Drop the guardian to a sliver of health
)

// ConsoleSequence is typed during play to open the command console.
const ConsoleSequence = "001"

var cheats = map[string]Command{
	"BBC2":  CmdSkip,
	"NN2":   CmdFinal,
	"VIRUS": CmdVirus,
}

// ParseCheat maps a console code to its command. Codes are case-insensitive;
// unknown codes report false.
func ParseCheat(code string) (Command, bool) {
	cmd, ok := cheats[strings.ToUpper(strings.TrimSpace(code))]
	return cmd, ok
}

// ParseCommand accepts a command name or a cheat code.
func ParseCommand(s string) (Command, bool) {
	switch c := Command(strings.ToLower(strings.TrimSpace(s))); c {
	case CmdRestart, CmdMenu, CmdSkip, CmdFinal, CmdVirus:
		return c, true
	}
	return ParseCheat(s)
}

// Apply runs a command. Unknown commands are ignored.
func (s *Session) Apply(cmd Command) error {
	s.logger.Debug("command", "cmd", cmd, "status", s.status)

	switch cmd {
	case CmdRestart:
		return s.Restart()
	case CmdMenu:
		s.ExitToMenu()
	case CmdSkip:
		if s.stage == nil {
			return nil
		}
		return s.NextLevel()
	case CmdFinal:
		return s.Start(len(s.levels) - 1)
	case CmdVirus:
		s.virus = true
		if s.stage != nil {
			s.armVirus()
		}
	default:
		s.logger.Warn("ignoring unknown command", "cmd", cmd)
	}
	return nil
}

// Sequence watches typed keys for the console sequence.
type Sequence struct {
	buf string
}

// Feed appends a key and reports whether the sequence just completed.
// Only single-character keys count.
func (q *Sequence) Feed(key string) bool {
	if len([]rune(key)) != 1 {
		return false
	}
	q.buf += key
	if n := len(ConsoleSequence); len(q.buf) > n {
		q.buf = q.buf[len(q.buf)-n:]
	}
	if q.buf == ConsoleSequence {
		q.buf = ""
		return true
	}
	return false
}
