package fake

import (
	"github.com/sguter90/sensormaestro/pkg/models"
)

// GetSupportedFakeSensors returns the virtual device's sensors, handle = type code
func GetSupportedFakeSensors() []models.SensorInfo {
	return []models.SensorInfo{
		{
			Name:       "Virtual 3-axis Accelerometer",
			Version:    1,
			Handle:     1,
			Type:       models.SensorTypeAccelerometer,
			MaxRange:   39.2266,
			Resolution: 0.0012,
			Power:      0.13,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual 3-axis Magnetic Field Sensor",
			Version:    1,
			Handle:     2,
			Type:       models.SensorTypeMagneticField,
			MaxRange:   2000,
			Resolution: 0.5,
			Power:      6.8,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Orientation Sensor",
			Version:    1,
			Handle:     3,
			Type:       models.SensorTypeOrientation,
			MaxRange:   360,
			Resolution: 1,
			Power:      9.7,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual 3-axis Gyroscope",
			Version:    1,
			Handle:     4,
			Type:       models.SensorTypeGyroscope,
			MaxRange:   34.9066,
			Resolution: 0.0011,
			Power:      6.1,
			MinDelay:   5000,
		},
		{
			Name:       "Virtual Light Sensor",
			Version:    1,
			Handle:     5,
			Type:       models.SensorTypeLight,
			MaxRange:   40000,
			Resolution: 1,
			Power:      0.2,
			MinDelay:   0,
		},
		{
			Name:       "Virtual Pressure Sensor",
			Version:    1,
			Handle:     6,
			Type:       models.SensorTypePressure,
			MaxRange:   1100,
			Resolution: 0.01,
			Power:      0.004,
			MinDelay:   40000,
		},
		{
			Name:       "Virtual Temperature Sensor",
			Version:    1,
			Handle:     7,
			Type:       models.SensorTypeTemperature,
			MaxRange:   85,
			Resolution: 0.1,
			Power:      0.004,
			MinDelay:   0,
		},
		{
			Name:       "Virtual Proximity Sensor",
			Version:    1,
			Handle:     8,
			Type:       models.SensorTypeProximity,
			MaxRange:   5,
			Resolution: 5,
			Power:      0.75,
			MinDelay:   0,
		},
		{
			Name:       "Virtual Gravity Sensor",
			Version:    1,
			Handle:     9,
			Type:       models.SensorTypeGravity,
			MaxRange:   19.6133,
			Resolution: 0.0012,
			Power:      12.93,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Linear Acceleration Sensor",
			Version:    1,
			Handle:     10,
			Type:       models.SensorTypeLinearAcceleration,
			MaxRange:   19.6133,
			Resolution: 0.0012,
			Power:      12.93,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Rotation Vector Sensor",
			Version:    1,
			Handle:     11,
			Type:       models.SensorTypeRotationVector,
			MaxRange:   1,
			Resolution: 0.000001,
			Power:      12.93,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Relative Humidity Sensor",
			Version:    1,
			Handle:     12,
			Type:       models.SensorTypeRelativeHumidity,
			MaxRange:   100,
			Resolution: 0.1,
			Power:      0.004,
			MinDelay:   0,
		},
		{
			Name:       "Virtual Ambient Temperature Sensor",
			Version:    1,
			Handle:     13,
			Type:       models.SensorTypeAmbientTemperature,
			MaxRange:   85,
			Resolution: 0.01,
			Power:      0.004,
			MinDelay:   0,
		},
		{
			Name:       "Virtual Uncalibrated Magnetic Field Sensor",
			Version:    1,
			Handle:     14,
			Type:       models.SensorTypeMagneticFieldUncalibrated,
			MaxRange:   2000,
			Resolution: 0.5,
			Power:      6.8,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Game Rotation Vector Sensor",
			Version:    1,
			Handle:     15,
			Type:       models.SensorTypeGameRotationVector,
			MaxRange:   1,
			Resolution: 0.000001,
			Power:      6.1,
			MinDelay:   10000,
		},
		{
			Name:       "Virtual Uncalibrated Gyroscope",
			Version:    1,
			Handle:     16,
			Type:       models.SensorTypeGyroscopeUncalibrated,
			MaxRange:   34.9066,
			Resolution: 0.0011,
			Power:      6.1,
			MinDelay:   5000,
		},
		{
			Name:       "Virtual Significant Motion Detector",
			Version:    1,
			Handle:     17,
			Type:       models.SensorTypeSignificantMotion,
			MaxRange:   1,
			Resolution: 1,
			Power:      0.3,
			MinDelay:   0,
		},
	}
}
