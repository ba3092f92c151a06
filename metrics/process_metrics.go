// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build linux

package metrics

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// ioStats is one sample of /proc/self/io.
type ioStats struct {
	readSyscalls  int64
	writeSyscalls int64
	readBytes     int64
	writeBytes    int64
}

// IOCollector exposes this process's storage I/O counters as Prometheus
// counters, read fresh from /proc/self/io on every scrape.
type IOCollector struct {
	readSyscallsDesc  *prometheus.Desc
	writeSyscallsDesc *prometheus.Desc
	readBytesDesc     *prometheus.Desc
	writeBytesDesc    *prometheus.Desc
}

func NewIOCollector() *IOCollector {
	return &IOCollector{
		readSyscallsDesc:  prometheus.NewDesc(metricName("process_read_syscalls_total"), "Number of read syscalls issued by this process.", nil, nil),
		writeSyscallsDesc: prometheus.NewDesc(metricName("process_write_syscalls_total"), "Number of write syscalls issued by this process.", nil, nil),
		readBytesDesc:     prometheus.NewDesc(metricName("process_read_bytes_total"), "Bytes read from storage by this process.", nil, nil),
		writeBytesDesc:    prometheus.NewDesc(metricName("process_write_bytes_total"), "Bytes written to storage by this process.", nil, nil),
	}
}

func (c *IOCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.readSyscallsDesc
	ch <- c.writeSyscallsDesc
	ch <- c.readBytesDesc
	ch <- c.writeBytesDesc
}

func (c *IOCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.getIOStats()
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.readSyscallsDesc, prometheus.CounterValue, float64(stats.readSyscalls))
	ch <- prometheus.MustNewConstMetric(c.writeSyscallsDesc, prometheus.CounterValue, float64(stats.writeSyscalls))
	ch <- prometheus.MustNewConstMetric(c.readBytesDesc, prometheus.CounterValue, float64(stats.readBytes))
	ch <- prometheus.MustNewConstMetric(c.writeBytesDesc, prometheus.CounterValue, float64(stats.writeBytes))
}

func (c *IOCollector) getIOStats() (ioStats, error) {
	f, err := os.Open("/proc/self/io")
	if err != nil {
		return ioStats{}, err
	}
	defer f.Close()

	var stats ioStats
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) != 2 {
			continue
		}
		val, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(parts[0]) {
		case "syscr":
			stats.readSyscalls = val
		case "syscw":
			stats.writeSyscalls = val
		case "read_bytes":
			stats.readBytes = val
		case "write_bytes":
			stats.writeBytes = val
		}
	}
	if err := scanner.Err(); err != nil {
		return ioStats{}, err
	}
	return stats, nil
}

// ProcessCollector bundles every process-level collector (currently just
// I/O) behind a single prometheus.Collector for easy registration.
type ProcessCollector struct {
	io *IOCollector
}

func NewProcessCollector() *ProcessCollector {
	return &ProcessCollector{io: NewIOCollector()}
}

func (c *ProcessCollector) Describe(ch chan<- *prometheus.Desc) { c.io.Describe(ch) }
func (c *ProcessCollector) Collect(ch chan<- prometheus.Metric) { c.io.Collect(ch) }
