package config

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// partitions is swapped out in tests.
var partitions = disk.Partitions

// DiscoverMounts lists mounted physical filesystems. It is used when the
// diskspace section is enabled without an explicit list of mount points.
//
// Each mount point is reported once, in the order the kernel lists them. The
// filesystem type becomes the disk type and md devices are labelled with
// their array name.
func DiscoverMounts() ([]Disk, error) {
	parts, err := partitions(false)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var disks []Disk
	for _, p := range parts {
		if p.Mountpoint == "" || seen[p.Mountpoint] {
			continue
		}
		// Skip pseudo and loop-backed mounts (snaps, squashfs images)
		if !strings.HasPrefix(p.Device, "/dev/") || strings.HasPrefix(p.Device, "/dev/loop") {
			continue
		}
		seen[p.Mountpoint] = true

		disks = append(disks, Disk{
			Mountpoint: p.Mountpoint,
			Type:       p.Fstype,
			Raid:       raidLabel(p.Device),
		})
	}
	return disks, nil
}

// raidLabel returns the md array name for /dev/mdX devices and "-" otherwise.
func raidLabel(device string) string {
	name := filepath.Base(device)
	if strings.HasPrefix(device, "/dev/md") {
		return name
	}
	return "-"
}
