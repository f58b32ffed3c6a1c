package cdl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/mieza/pkg/circuit"
)

// bareToken matches values that lex as a single Number or Ident token and can
// therefore be written without quotes.
var bareToken = regexp.MustCompile(`^(?:[-+]?[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?[A-Za-zµμΩ°]*[0-9]*|[A-Za-z_][A-Za-z0-9_]*(?:-[A-Za-z0-9_]+)*)$`)

// Format renders c back to CDL. Parsing the result yields an equal circuit.
func Format(c *circuit.Circuit) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, c)
	return buf.Bytes()
}

// Write emits c as CDL: components first, then connections, then nets.
func Write(w io.Writer, c *circuit.Circuit) error {
	bw := bufio.NewWriter(w)
	for _, comp := range c.Components {
		writeComponent(bw, comp)
	}
	if len(c.Connections) > 0 && len(c.Components) > 0 {
		bw.WriteByte('\n')
	}
	for _, conn := range c.Connections {
		fmt.Fprintf(bw, "%s -> %s", conn.From, conn.To)
		if len(conn.Properties) > 0 {
			fmt.Fprintf(bw, " [%s]", strings.Join(properties(conn.Properties), ", "))
		}
		bw.WriteByte('\n')
	}
	if len(c.Nets) > 0 && (len(c.Components) > 0 || len(c.Connections) > 0) {
		bw.WriteByte('\n')
	}
	for _, n := range c.Nets {
		members := make([]string, len(n.Members))
		for i, m := range n.Members {
			members[i] = m.String()
		}
		fmt.Fprintf(bw, "net %s: %s\n", n.Name, strings.Join(members, ", "))
	}
	return bw.Flush()
}

func writeComponent(w *bufio.Writer, comp circuit.Component) {
	fmt.Fprintf(w, "%s %s", comp.ID, comp.Kind)
	if comp.Value != "" {
		fmt.Fprintf(w, " %s", quote(comp.Value))
	}
	if comp.Position != nil {
		fmt.Fprintf(w, " %s", comp.Position)
	}
	if comp.Rotation != circuit.Rotate0 {
		fmt.Fprintf(w, " %s=%ddeg", KeyRotation, int(comp.Rotation))
	}
	if comp.Label != "" {
		fmt.Fprintf(w, " %s=%s", KeyLabel, strconv.Quote(comp.Label))
	}
	for _, p := range properties(comp.Properties) {
		fmt.Fprintf(w, " %s", p)
	}
	w.WriteByte('\n')
}

func properties(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + quote(m[k])
	}
	return out
}

func quote(s string) string {
	if bareToken.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}
