// Package sysinfo captures the platform descriptor and the host capability
// set for a run. Both are collected once at setup and read-only afterward.
package sysinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/opscart/dockerbench/internal/clock"
)

// Descriptor identifies the platform a dataset was collected on. One is
// written per run directory so datasets from different hosts stay
// attributable when compared later.
type Descriptor struct {
	Label         string
	Kernel        string
	OS            string
	CPUModel      string
	CPUCores      int
	MemoryMB      uint64
	Storage       string
	DockerVersion string
	ClockSource   string
	CollectedAt   time.Time
}

// Collect gathers the descriptor from the kernel and /proc. Every field is
// best-effort: a host that hides a detail gets "unknown", not an error.
func Collect(label string) Descriptor {
	d := Descriptor{
		Label:       label,
		Kernel:      "unknown",
		OS:          "unknown",
		CPUModel:    "unknown",
		Storage:     "unknown",
		ClockSource: clock.Source(),
		CollectedAt: time.Now(),
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		d.Kernel = fmt.Sprintf("%s %s %s",
			cstr(uts.Sysname[:]), cstr(uts.Release[:]), cstr(uts.Machine[:]))
	}

	if f, err := os.Open("/etc/os-release"); err == nil {
		d.OS = parseOSRelease(f)
		f.Close()
	}

	if f, err := os.Open("/proc/cpuinfo"); err == nil {
		d.CPUModel, d.CPUCores = parseCPUInfo(f)
		f.Close()
	}

	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil {
		d.MemoryMB = uint64(si.Totalram) * uint64(si.Unit) / (1000 * 1000)
	}

	if f, err := os.Open("/proc/mounts"); err == nil {
		d.Storage = storageType(rootDevice(f))
		f.Close()
	}

	return d
}

// Write renders the descriptor as the run directory's platform-info.txt.
func (d Descriptor) Write(dir string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "platform: %s\n", d.Label)
	fmt.Fprintf(&b, "collected_at: %s\n", d.CollectedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "kernel: %s\n", d.Kernel)
	fmt.Fprintf(&b, "os: %s\n", d.OS)
	fmt.Fprintf(&b, "cpu_model: %s\n", d.CPUModel)
	fmt.Fprintf(&b, "cpu_cores: %d\n", d.CPUCores)
	fmt.Fprintf(&b, "memory_mb: %d\n", d.MemoryMB)
	fmt.Fprintf(&b, "storage: %s\n", d.Storage)
	fmt.Fprintf(&b, "docker_version: %s\n", d.DockerVersion)
	fmt.Fprintf(&b, "clock_source: %s\n", d.ClockSource)

	path := filepath.Join(dir, "platform-info.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write platform descriptor: %w", err)
	}

	return nil
}

func cstr(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func parseOSRelease(r io.Reader) string {
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if name, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(name, `"`)
		}
	}
	return "unknown"
}

func parseCPUInfo(r io.Reader) (model string, cores int) {
	model = "unknown"

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		switch {
		case strings.HasPrefix(line, "processor"):
			cores++
		case strings.HasPrefix(line, "model name") && model == "unknown":
			if _, v, ok := strings.Cut(line, ":"); ok {
				model = strings.TrimSpace(v)
			}
		}
	}

	return model, cores
}

// rootDevice returns the block device mounted at / according to a
// /proc/mounts stream, or "" when the root is not a plain block device.
func rootDevice(r io.Reader) string {
	s := bufio.NewScanner(r)
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) >= 2 && fields[1] == "/" && strings.HasPrefix(fields[0], "/dev/") {
			return fields[0]
		}
	}
	return ""
}

// storageType classifies the root device via its queue/rotational flag.
func storageType(device string) string {
	if device == "" {
		return "unknown"
	}

	disk := strings.TrimPrefix(device, "/dev/")
	// Strip the partition suffix: sda1 -> sda, nvme0n1p2 -> nvme0n1.
	if i := strings.LastIndex(disk, "p"); i > 0 && strings.HasPrefix(disk, "nvme") {
		disk = disk[:i]
	} else {
		disk = strings.TrimRight(disk, "0123456789")
	}

	b, err := os.ReadFile(filepath.Join("/sys/block", disk, "queue", "rotational"))
	if err != nil {
		return "unknown"
	}

	if strings.TrimSpace(string(b)) == "0" {
		return "ssd"
	}
	return "hdd"
}
