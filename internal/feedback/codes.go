package feedback

// Code is a stable rule identifier. The set of codes is closed and
// versioned: downstream automation matches on these strings, so a code
// is never renamed or reused. Unknown codes deserialize as opaque
// strings.
type Code string

// Rule codes, grouped by plugin family.
const (
	// changelog-entry
	ChangelogInvalidDistribution Code = "CHANGELOG001"
	ChangelogBugNotTargeted      Code = "CHANGELOG002"
	ChangelogVersionOrder        Code = "CHANGELOG003"

	// patch-format (DEP-3)
	PatchDEP3MissingDescription Code = "PATCH_DEP3_MISSING_DESCRIPTION"
	PatchDEP3EmptyDescription   Code = "PATCH_DEP3_EMPTY_DESCRIPTION"
	PatchDEP3MissingOrigin      Code = "PATCH_DEP3_MISSING_ORIGIN"
	PatchDEP3InvalidLastUpdate  Code = "PATCH_DEP3_INVALID_LAST_UPDATE"
	PatchDEP3InvalidForwarded   Code = "PATCH_DEP3_INVALID_FORWARDED"

	// sru-template
	SRUNoBugsReferenced Code = "SRU001"
	SRUTemplateMissing  Code = "SRU002"
	SRULookupFailed     Code = "SRU003"

	// publishing-history
	HistoryAlreadyPublished Code = "HISTORY001"
	HistoryUnparseable      Code = "HISTORY002"

	// upload-queue
	QueueAlreadyQueued Code = "QUEUE001"
	QueueUnparseable   Code = "QUEUE002"

	// update-maintainer
	MaintainerNotUpdated Code = "MAINTAINER001"

	// Reserved for runner diagnostics; never emitted by a plugin itself.
	InternalPluginPanic Code = "INTERNAL_PLUGIN_PANIC"
)

// registry holds the default severity of every known code.
var registry = map[Code]Severity{
	ChangelogInvalidDistribution: Error,
	ChangelogBugNotTargeted:      Error,
	ChangelogVersionOrder:        Error,
	PatchDEP3MissingDescription:  Warning,
	PatchDEP3EmptyDescription:    Warning,
	PatchDEP3MissingOrigin:       Warning,
	PatchDEP3InvalidLastUpdate:   Warning,
	PatchDEP3InvalidForwarded:    Warning,
	SRUNoBugsReferenced:          Info,
	SRUTemplateMissing:           Error,
	SRULookupFailed:              Warning,
	HistoryAlreadyPublished:      Error,
	HistoryUnparseable:           Warning,
	QueueAlreadyQueued:           Error,
	QueueUnparseable:             Warning,
	MaintainerNotUpdated:         Warning,
	InternalPluginPanic:          Error,
}

// Known reports whether c belongs to the closed code registry.
func (c Code) Known() bool {
	_, ok := registry[c]
	return ok
}

// DefaultSeverity returns the registry severity for c, or Warning for
// codes outside the registry.
func (c Code) DefaultSeverity() Severity {
	if s, ok := registry[c]; ok {
		return s
	}
	return Warning
}
