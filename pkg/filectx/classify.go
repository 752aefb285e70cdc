package filectx

// FileType is the coarse classification of a file by extension.
// It is exactly one of the eight category names bound to the "type"
// context variable.
type FileType string

const (
	TypeImage    FileType = "image"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeDocument FileType = "document"
	TypeArchive  FileType = "archive"
	TypeText     FileType = "text"
	TypeCode     FileType = "code"
	TypeOther    FileType = "other"
)

// fileTypes maps lowercase extensions (without dot) to their category.
var fileTypes = map[string]FileType{}

func init() {
	classes := map[FileType][]string{
		TypeImage: {
			"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "ico",
			"tiff", "heic", "raw", "cr2", "nef",
		},
		TypeVideo: {
			"mp4", "mkv", "avi", "mov", "webm", "flv", "wmv", "m4v",
			"3gp", "mts", "m2ts",
		},
		TypeAudio: {
			"mp3", "wav", "ogg", "flac", "aac", "m4a", "wma", "opus",
			"aiff", "ape",
		},
		TypeDocument: {
			"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt",
			"ods", "odp", "rtf", "epub",
		},
		TypeArchive: {
			"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "iso", "dmg",
			"cab",
		},
		TypeText: {
			"txt", "md", "csv", "log", "ini", "cfg", "conf",
		},
		TypeCode: {
			"rs", "py", "js", "ts", "java", "c", "cpp", "h", "hpp", "go",
			"rb", "php", "swift", "kt", "scala", "html", "css", "scss",
			"sass", "less", "json", "xml", "yaml", "yml", "toml", "sh",
			"bash", "zsh", "fish", "bat", "ps1", "sql", "r", "lua",
			"perl", "vue", "jsx", "tsx", "svelte",
		},
	}
	for ft, exts := range classes {
		for _, ext := range exts {
			fileTypes[ext] = ft
		}
	}
}

// Classify returns the file type category for a lowercase extension
// (without dot), defaulting to TypeOther.
func Classify(ext string) FileType {
	if ft, ok := fileTypes[ext]; ok {
		return ft
	}
	return TypeOther
}

// mimeTypes maps lowercase extensions to MIME types.
var mimeTypes = map[string]string{
	// Images
	"jpg": "image/jpeg", "jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"bmp":  "image/bmp",
	"ico":  "image/x-icon",
	"tiff": "image/tiff",
	"heic": "image/heic",

	// Videos
	"mp4":  "video/mp4",
	"mkv":  "video/x-matroska",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"webm": "video/webm",
	"flv":  "video/x-flv",
	"wmv":  "video/x-ms-wmv",

	// Audio
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
	"aac":  "audio/aac",
	"m4a":  "audio/mp4",
	"opus": "audio/opus",

	// Documents
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",

	// Archives
	"zip": "application/zip",
	"rar": "application/vnd.rar",
	"7z":  "application/x-7z-compressed",
	"tar": "application/x-tar",
	"gz":  "application/gzip",

	// Text and code
	"txt":  "text/plain",
	"html": "text/html", "htm": "text/html",
	"css":  "text/css",
	"js":   "text/javascript",
	"json": "application/json",
	"xml":  "application/xml",
	"md":   "text/markdown",
	"csv":  "text/csv",
	"yaml": "text/yaml", "yml": "text/yaml",
}

// GuessMIME returns the MIME type for a lowercase extension (without
// dot), defaulting to application/octet-stream.
func GuessMIME(ext string) string {
	if m, ok := mimeTypes[ext]; ok {
		return m
	}
	return "application/octet-stream"
}
