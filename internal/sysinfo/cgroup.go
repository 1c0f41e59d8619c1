package sysinfo

import (
	"fmt"
	"time"

	"github.com/containerd/cgroups/v3/cgroup2"
)

// containerCgroupPaths are the unified-hierarchy locations Docker places a
// container under, depending on its cgroup driver.
func containerCgroupPaths(containerID string) []string {
	return []string{
		fmt.Sprintf("/system.slice/docker-%s.scope", containerID), // systemd driver
		fmt.Sprintf("/docker/%s", containerID),                    // cgroupfs driver
	}
}

// ContainerCPUUsage reads a running container's cumulative CPU time from
// its cgroup v2 cpu.stat. Two readings over a known window give observed
// utilization without trusting the runtime's own sampling.
func ContainerCPUUsage(containerID string) (time.Duration, error) {
	for _, group := range containerCgroupPaths(containerID) {
		mgr, err := cgroup2.Load(group)
		if err != nil {
			continue
		}

		stat, err := mgr.Stat()
		if err != nil || stat.GetCPU() == nil {
			continue
		}

		return time.Duration(stat.GetCPU().GetUsageUsec()) * time.Microsecond, nil
	}

	return 0, fmt.Errorf("no cgroup found for container %s", containerID)
}
