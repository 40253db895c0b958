package memoria

import "github.com/memoriasite/memoria/internal/runtimeconfig"

var (
	ErrBaseURLRequired              = runtimeconfig.ErrBaseURLRequired
	ErrStorageEndpointRequired      = runtimeconfig.ErrStorageEndpointRequired
	ErrStorageBucketRequired        = runtimeconfig.ErrStorageBucketRequired
	ErrStoragePublicBaseURLRequired = runtimeconfig.ErrStoragePublicBaseURLRequired
	ErrQRSizeInvalid                = runtimeconfig.ErrQRSizeInvalid
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	AppConfig     = runtimeconfig.AppConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	StorageConfig = runtimeconfig.StorageConfig
	QRConfig      = runtimeconfig.QRConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
