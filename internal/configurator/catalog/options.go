package catalog

// OptionSet is the typed configuration carried by a service selection.
// Exactly one concrete option struct exists per ServiceKey; fields are only
// meaningful while the service is selected, but values survive deselection.
type OptionSet interface {
	Service() ServiceKey
	// Set applies a wire option by its shared key name. Numeric values parse
	// tolerantly (bad input degrades to zero); unknown keys are ignored and
	// reported via the return value.
	Set(key, value string) bool
	// Wire renders the options in the wire shape shared with the page and
	// admin collaborators.
	Wire() map[string]interface{}
	// Missing returns the required wire keys that are still unset.
	Missing() []string
}

// NewOptionSet returns the zero-value option struct for a service.
func NewOptionSet(k ServiceKey) OptionSet {
	switch k {
	case ServiceCloud:
		return &CloudOptions{}
	case ServiceVDI:
		return &VDIOptions{}
	case ServiceMonitoring:
		return &MonitoringOptions{}
	case ServiceBackup:
		return &BackupOptions{}
	default:
		return nil
	}
}

// --- Cloud ---

type CloudOptions struct {
	Platform         string `json:"cloud_type"`
	Users            int    `json:"cloud_users"`
	StorageGB        int    `json:"cloud_storage"`
	HighAvailability bool   `json:"cloud_ha"`
}

func (o *CloudOptions) Service() ServiceKey { return ServiceCloud }

func (o *CloudOptions) Set(key, value string) bool {
	switch key {
	case OptCloudType:
		o.Platform = value
	case OptCloudUsers:
		o.Users = ParseQuantity(value)
	case OptCloudStorage:
		o.StorageGB = ParseQuantity(value)
	case OptCloudHA:
		o.HighAvailability = ParseToggle(value)
	default:
		return false
	}
	return true
}

func (o *CloudOptions) Wire() map[string]interface{} {
	return map[string]interface{}{
		OptCloudType:    o.Platform,
		OptCloudUsers:   o.Users,
		OptCloudStorage: o.StorageGB,
		OptCloudHA:      o.HighAvailability,
	}
}

func (o *CloudOptions) Missing() []string {
	var missing []string
	if o.Platform == "" {
		missing = append(missing, OptCloudType)
	}
	if o.Users <= 0 {
		missing = append(missing, OptCloudUsers)
	}
	if o.StorageGB <= 0 {
		missing = append(missing, OptCloudStorage)
	}
	return missing
}

// --- VDI ---

type VDIOptions struct {
	Workplaces  int             `json:"vdi_users"`
	Performance PerformanceTier `json:"vdi_performance"`
	OS          string          `json:"vdi_os"`
	OfficeSuite bool            `json:"vdi_office"`
}

func (o *VDIOptions) Service() ServiceKey { return ServiceVDI }

func (o *VDIOptions) Set(key, value string) bool {
	switch key {
	case OptVDIUsers:
		o.Workplaces = ParseQuantity(value)
	case OptVDIPerformance:
		o.Performance = PerformanceTier(value)
	case OptVDIOS:
		o.OS = value
	case OptVDIOffice:
		o.OfficeSuite = ParseToggle(value)
	default:
		return false
	}
	return true
}

func (o *VDIOptions) Wire() map[string]interface{} {
	return map[string]interface{}{
		OptVDIUsers:       o.Workplaces,
		OptVDIPerformance: string(o.Performance),
		OptVDIOS:          o.OS,
		OptVDIOffice:      o.OfficeSuite,
	}
}

func (o *VDIOptions) Missing() []string {
	var missing []string
	if o.Workplaces <= 0 {
		missing = append(missing, OptVDIUsers)
	}
	if o.Performance == "" {
		missing = append(missing, OptVDIPerformance)
	}
	if o.OS == "" {
		missing = append(missing, OptVDIOS)
	}
	return missing
}

// --- Monitoring ---

type MonitoringOptions struct {
	Devices        int             `json:"monitoring_devices"`
	Scope          MonitoringScope `json:"monitoring_scope"`
	AroundTheClock bool            `json:"monitoring_247"`
	Alerts         bool            `json:"monitoring_alerts"`
}

func (o *MonitoringOptions) Service() ServiceKey { return ServiceMonitoring }

func (o *MonitoringOptions) Set(key, value string) bool {
	switch key {
	case OptMonitoringDevices:
		o.Devices = ParseQuantity(value)
	case OptMonitoringScope:
		o.Scope = MonitoringScope(value)
	case OptMonitoring247:
		o.AroundTheClock = ParseToggle(value)
	case OptMonitoringAlerts:
		o.Alerts = ParseToggle(value)
	default:
		return false
	}
	return true
}

func (o *MonitoringOptions) Wire() map[string]interface{} {
	return map[string]interface{}{
		OptMonitoringDevices: o.Devices,
		OptMonitoringScope:   string(o.Scope),
		OptMonitoring247:     o.AroundTheClock,
		OptMonitoringAlerts:  o.Alerts,
	}
}

func (o *MonitoringOptions) Missing() []string {
	var missing []string
	if o.Devices <= 0 {
		missing = append(missing, OptMonitoringDevices)
	}
	if o.Scope == "" {
		missing = append(missing, OptMonitoringScope)
	}
	return missing
}

// --- Backup ---

type BackupOptions struct {
	VolumeGB      int             `json:"backup_volume"`
	Frequency     BackupFrequency `json:"backup_frequency"`
	RetentionDays int             `json:"backup_retention"`
	Offsite       bool            `json:"backup_offsite"`
}

func (o *BackupOptions) Service() ServiceKey { return ServiceBackup }

func (o *BackupOptions) Set(key, value string) bool {
	switch key {
	case OptBackupVolume:
		o.VolumeGB = ParseQuantity(value)
	case OptBackupFrequency:
		o.Frequency = BackupFrequency(value)
	case OptBackupRetention:
		o.RetentionDays = ParseQuantity(value)
	case OptBackupOffsite:
		o.Offsite = ParseToggle(value)
	default:
		return false
	}
	return true
}

func (o *BackupOptions) Wire() map[string]interface{} {
	return map[string]interface{}{
		OptBackupVolume:    o.VolumeGB,
		OptBackupFrequency: string(o.Frequency),
		OptBackupRetention: o.RetentionDays,
		OptBackupOffsite:   o.Offsite,
	}
}

func (o *BackupOptions) Missing() []string {
	var missing []string
	if o.VolumeGB <= 0 {
		missing = append(missing, OptBackupVolume)
	}
	if o.Frequency == "" {
		missing = append(missing, OptBackupFrequency)
	}
	if o.RetentionDays <= 0 {
		missing = append(missing, OptBackupRetention)
	}
	return missing
}
