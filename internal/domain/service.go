package domain

// ServiceType is one of the fixed clinic services
type ServiceType string

const (
	ServiceCheckup     ServiceType = "checkup"
	ServiceVaccination ServiceType = "vaccination"
	ServiceDeworming   ServiceType = "deworming"
	ServiceGrooming    ServiceType = "grooming"
	ServiceDental      ServiceType = "dental"
	ServiceSurgery     ServiceType = "surgery"
)

// servicePrices фиксированный прайс клиники в песо
// Цена фиксируется на записи в момент бронирования и не пересчитывается
var servicePrices = map[ServiceType]float64{
	ServiceCheckup:     300,
	ServiceVaccination: 500,
	ServiceDeworming:   350,
	ServiceGrooming:    400,
	ServiceDental:      800,
	ServiceSurgery:     2500,
}

// IsValid returns true if the service type is in the catalog
func (s ServiceType) IsValid() bool {
	_, ok := servicePrices[s]
	return ok
}

// Price returns the catalog price for the service type
func (s ServiceType) Price() (float64, bool) {
	price, ok := servicePrices[s]
	return price, ok
}

// ServiceTypes returns all known service types
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceCheckup,
		ServiceVaccination,
		ServiceDeworming,
		ServiceGrooming,
		ServiceDental,
		ServiceSurgery,
	}
}
