// Package catalog defines the fixed set of purchasable IT services and the
// vocabulary of their configuration options.
package catalog

import (
	"strconv"
	"strings"
)

// ServiceKey identifies one of the four offered services. The set is closed.
type ServiceKey string

const (
	ServiceCloud      ServiceKey = "cloud"
	ServiceVDI        ServiceKey = "vdi"
	ServiceMonitoring ServiceKey = "monitoring"
	ServiceBackup     ServiceKey = "backup"
)

// Keys returns all service keys in declaration order. The order is the
// tie-breaker when services are ranked by recommendation priority.
func Keys() []ServiceKey {
	return []ServiceKey{ServiceCloud, ServiceVDI, ServiceMonitoring, ServiceBackup}
}

// Valid reports whether k names a known service.
func (k ServiceKey) Valid() bool {
	switch k {
	case ServiceCloud, ServiceVDI, ServiceMonitoring, ServiceBackup:
		return true
	}
	return false
}

// DisplayName returns the customer-facing service name.
func (k ServiceKey) DisplayName() string {
	switch k {
	case ServiceCloud:
		return "Cloud Services"
	case ServiceVDI:
		return "Virtual Workplaces"
	case ServiceMonitoring:
		return "Monitoring"
	case ServiceBackup:
		return "Backup & Recovery"
	default:
		return string(k)
	}
}

// --- Option keys (wire names shared with the page collaborator) ---

const (
	OptCloudType    = "cloud_type"
	OptCloudUsers   = "cloud_users"
	OptCloudStorage = "cloud_storage"
	OptCloudHA      = "cloud_ha"

	OptVDIUsers       = "vdi_users"
	OptVDIPerformance = "vdi_performance"
	OptVDIOS          = "vdi_os"
	OptVDIOffice      = "vdi_office"

	OptMonitoringDevices = "monitoring_devices"
	OptMonitoringScope   = "monitoring_scope"
	OptMonitoring247     = "monitoring_247"
	OptMonitoringAlerts  = "monitoring_alerts"

	OptBackupVolume    = "backup_volume"
	OptBackupFrequency = "backup_frequency"
	OptBackupRetention = "backup_retention"
	OptBackupOffsite   = "backup_offsite"
)

// RequiredOptions returns the option keys that must be non-empty before the
// configuration step may be left, per service.
func RequiredOptions(k ServiceKey) []string {
	switch k {
	case ServiceCloud:
		return []string{OptCloudType, OptCloudUsers, OptCloudStorage}
	case ServiceVDI:
		return []string{OptVDIUsers, OptVDIPerformance, OptVDIOS}
	case ServiceMonitoring:
		return []string{OptMonitoringDevices, OptMonitoringScope}
	case ServiceBackup:
		return []string{OptBackupVolume, OptBackupFrequency, OptBackupRetention}
	default:
		return nil
	}
}

// AllOptions returns every option key of a service in display order.
func AllOptions(k ServiceKey) []string {
	switch k {
	case ServiceCloud:
		return []string{OptCloudType, OptCloudUsers, OptCloudStorage, OptCloudHA}
	case ServiceVDI:
		return []string{OptVDIUsers, OptVDIPerformance, OptVDIOS, OptVDIOffice}
	case ServiceMonitoring:
		return []string{OptMonitoringDevices, OptMonitoringScope, OptMonitoring247, OptMonitoringAlerts}
	case ServiceBackup:
		return []string{OptBackupVolume, OptBackupFrequency, OptBackupRetention, OptBackupOffsite}
	default:
		return nil
	}
}

// OptionLabel returns the customer-facing label for a wire option key.
func OptionLabel(key string) string {
	switch key {
	case OptCloudType:
		return "Cloud Platform"
	case OptCloudUsers:
		return "Users"
	case OptCloudStorage:
		return "Storage (GB)"
	case OptCloudHA:
		return "High Availability"
	case OptVDIUsers:
		return "Workplaces"
	case OptVDIPerformance:
		return "Performance Class"
	case OptVDIOS:
		return "Operating System"
	case OptVDIOffice:
		return "Office 365"
	case OptMonitoringDevices:
		return "Devices"
	case OptMonitoringScope:
		return "Scope"
	case OptMonitoring247:
		return "24/7 On-Call"
	case OptMonitoringAlerts:
		return "Alerts"
	case OptBackupVolume:
		return "Volume (GB)"
	case OptBackupFrequency:
		return "Frequency"
	case OptBackupRetention:
		return "Retention"
	case OptBackupOffsite:
		return "Offsite Backup"
	default:
		return strings.ReplaceAll(key, "_", " ")
	}
}

// --- Tier enumerations ---

// PerformanceTier is the VDI sizing class.
type PerformanceTier string

const (
	PerformanceBasic    PerformanceTier = "basic"
	PerformanceStandard PerformanceTier = "standard"
	PerformancePremium  PerformanceTier = "premium"
)

// MonitoringScope is the depth of the monitoring engagement.
type MonitoringScope string

const (
	ScopeBasic    MonitoringScope = "basic"
	ScopeStandard MonitoringScope = "standard"
	ScopeAdvanced MonitoringScope = "advanced"
)

// BackupFrequency is the backup cadence.
type BackupFrequency string

const (
	FrequencyDaily    BackupFrequency = "daily"
	FrequencyHourly   BackupFrequency = "hourly"
	FrequencyRealtime BackupFrequency = "realtime"
)

// CompanySize buckets the prospect's organization.
type CompanySize string

const (
	SizeSmall      CompanySize = "small"
	SizeMedium     CompanySize = "medium"
	SizeLarge      CompanySize = "large"
	SizeEnterprise CompanySize = "enterprise"
)

// Valid reports whether s is a known company size.
func (s CompanySize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeEnterprise:
		return true
	}
	return false
}

// DefaultEmployeeCount derives a headcount estimate from the size bucket.
func (s CompanySize) DefaultEmployeeCount() int {
	switch s {
	case SizeSmall:
		return 10
	case SizeMedium:
		return 50
	case SizeLarge:
		return 250
	case SizeEnterprise:
		return 1000
	default:
		return 0
	}
}

// ParseQuantity converts user-entered quantity text into a count. Empty or
// non-numeric input degrades to zero; estimation is advisory, never an error.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseToggle interprets checkbox-style values from the wire.
func ParseToggle(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
