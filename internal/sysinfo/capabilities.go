package sysinfo

import (
	"os"
	"os/exec"

	"github.com/containerd/cgroups/v3"
	"golang.org/x/sys/unix"
)

const dropCachesPath = "/proc/sys/vm/drop_caches"

// Capabilities is the immutable capability set detected once at run setup.
// Dimensions consult it instead of re-probing the host inline; a missing
// capability degrades a dimension to skipped or uncontrolled, never to a
// failed run.
type Capabilities struct {
	// DropCaches means the kernel page cache can be invalidated between
	// cold-start trials. Without it, cache state is an uncontrolled
	// variable and is reported as such.
	DropCaches bool

	// CgroupV2 means the unified cgroup hierarchy is mounted, so CPU
	// utilization can be read from cpu.stat instead of parsed out of
	// `docker stats` text.
	CgroupV2 bool

	// Unshare means util-linux unshare is on PATH, enabling the
	// namespace-creation dimension.
	Unshare bool
}

// Detect probes the host once. The returned value is treated as read-only
// for the life of the run.
func Detect() Capabilities {
	caps := Capabilities{
		CgroupV2: cgroups.Mode() == cgroups.Unified,
	}

	if os.Geteuid() == 0 && unix.Access(dropCachesPath, unix.W_OK) == nil {
		caps.DropCaches = true
	}

	if _, err := exec.LookPath("unshare"); err == nil {
		caps.Unshare = true
	}

	return caps
}

// DropPageCache asks the kernel to drop clean page, dentry and inode
// caches. Best effort: callers proceed without it on failure.
func DropPageCache() error {
	unix.Sync()
	return os.WriteFile(dropCachesPath, []byte("3\n"), 0o200)
}
