// Package device collects the coarse host signals sent to the optimizer.
package device

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/diogo/malcolmweb/internal/models"
)

// Unknown is the sentinel sent for signals the host cannot provide. The
// payload always carries all four fields; unavailable ones are substituted
// with this literal rather than omitted.
const Unknown = "unknown"

// Signal is a numeric device signal that may be unavailable. An unavailable
// signal marshals as the JSON string "unknown".
type Signal struct {
	value float64
	known bool
}

// Known returns an available signal with the given value.
func Known(v float64) Signal {
	return Signal{value: v, known: true}
}

// Unavailable returns a signal the host could not provide.
func Unavailable() Signal {
	return Signal{}
}

// IsKnown reports whether the signal carries a value.
func (s Signal) IsKnown() bool {
	return s.known
}

// Value returns the signal value, or 0 when unavailable.
func (s Signal) Value() float64 {
	return s.value
}

// MarshalJSON emits the value as a number, or "unknown" when unavailable.
func (s Signal) MarshalJSON() ([]byte, error) {
	if !s.known {
		return json.Marshal(Unknown)
	}
	return []byte(strconv.FormatFloat(s.value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts either a number or the "unknown" sentinel.
func (s *Signal) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*s = Known(v)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != Unknown {
		return fmt.Errorf("invalid signal value: %q", str)
	}
	*s = Unavailable()
	return nil
}

// Profile is a snapshot of the host's device and network signals. It is
// constructed fresh on each optimize invocation and discarded afterwards.
type Profile struct {
	UserAgent string
	Cores     Signal
	MemoryGB  Signal
	Downlink  Signal
}

// ConnectionString renders the downlink signal the way the service expects
// it: a human-readable "<speed> Mbps" string, or "unknown".
func (p Profile) ConnectionString() string {
	if !p.Downlink.IsKnown() {
		return Unknown
	}
	return strconv.FormatFloat(p.Downlink.Value(), 'f', -1, 64) + " Mbps"
}

// MarshalJSON produces the optimize request body. All four keys are always
// present.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserAgent  string `json:"userAgent"`
		Cores      Signal `json:"cores"`
		Memory     Signal `json:"memory"`
		Connection string `json:"connection"`
	}{
		UserAgent:  p.UserAgent,
		Cores:      p.Cores,
		Memory:     p.MemoryGB,
		Connection: p.ConnectionString(),
	})
}

// Collector gathers a Profile from per-signal probes. Probes are fields so
// tests can simulate hosts where a signal is unavailable.
type Collector struct {
	UserAgent func() string
	Cores     func() (int, bool)
	MemoryGB  func() (float64, bool)
	Downlink  func() (float64, bool)
}

// DefaultCollector returns a Collector wired to the host probes.
func DefaultCollector() Collector {
	return Collector{
		UserAgent: hostUserAgent,
		Cores:     hostCores,
		MemoryGB:  hostMemoryGB,
		Downlink:  hostDownlinkMbps,
	}
}

// Collect builds a fresh Profile. Probes that fail or are absent yield
// unavailable signals; the profile itself is always complete.
func (c Collector) Collect() Profile {
	p := Profile{}

	if c.UserAgent != nil {
		p.UserAgent = c.UserAgent()
	}
	if p.UserAgent == "" {
		p.UserAgent = Unknown
	}

	if c.Cores != nil {
		if n, ok := c.Cores(); ok {
			p.Cores = Known(float64(n))
		}
	}
	if c.MemoryGB != nil {
		if gb, ok := c.MemoryGB(); ok {
			p.MemoryGB = Known(gb)
		}
	}
	if c.Downlink != nil {
		if mbps, ok := c.Downlink(); ok {
			p.Downlink = Known(mbps)
		}
	}

	return p
}

// hostUserAgent identifies this client and the host platform.
func hostUserAgent() string {
	detail := runtime.GOOS + "; " + runtime.GOARCH
	if kernel, err := exec.Command("uname", "-r").Output(); err == nil {
		detail += "; " + strings.TrimSpace(string(kernel))
	}
	return fmt.Sprintf("malcolmweb/%s (%s)", models.Version, detail)
}

func hostCores() (int, bool) {
	n := runtime.NumCPU()
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// hostMemoryGB reads total physical memory. Linux exposes it in /proc/meminfo;
// macOS via sysctl. Other platforms report the signal as unavailable.
func hostMemoryGB() (float64, bool) {
	switch runtime.GOOS {
	case "linux":
		return linuxMemoryGB("/proc/meminfo")
	case "darwin":
		out, err := exec.Command("sysctl", "-n", "hw.memsize").Output()
		if err != nil {
			return 0, false
		}
		bytes, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
		if err != nil || bytes <= 0 {
			return 0, false
		}
		return bytes / (1024 * 1024 * 1024), true
	default:
		return 0, false
	}
}

func linuxMemoryGB(path string) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || kb <= 0 {
			return 0, false
		}
		return kb / (1024 * 1024), true
	}
	return 0, false
}

// hostDownlinkMbps reports the link speed of the first interface that is up.
// Only wired links expose a speed on Linux; everything else is unavailable.
func hostDownlinkMbps() (float64, bool) {
	if runtime.GOOS != "linux" {
		return 0, false
	}
	return linuxDownlinkMbps("/sys/class/net")
}

func linuxDownlinkMbps(netDir string) (float64, bool) {
	entries, err := os.ReadDir(netDir)
	if err != nil {
		return 0, false
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "lo" {
			continue
		}

		state, err := os.ReadFile(filepath.Join(netDir, name, "operstate"))
		if err != nil || strings.TrimSpace(string(state)) != "up" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(netDir, name, "speed"))
		if err != nil {
			continue
		}
		mbps, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
		if err != nil || mbps <= 0 {
			continue
		}
		return mbps, true
	}
	return 0, false
}
