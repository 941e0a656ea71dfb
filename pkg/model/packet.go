package model

// Person is a renter or an additional driver
type Person struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	DateOfBirth   string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	LicenseState  string `json:"licenseState"`
	LicenseExpiry string `json:"licenseExpiry" binding:"omitempty,datetime=2006-01-02"`
}

// FullName joins first and last name
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Insurance is the renter's own coverage
type Insurance struct {
	Company      string `json:"company" binding:"required"`
	PolicyNumber string `json:"policyNumber" binding:"required"`
	Expiry       string `json:"expiry" binding:"omitempty,datetime=2006-01-02"`
	AgentPhone   string `json:"agentPhone"`
}

// CustomerPacket is submitted through the customer-info link
type CustomerPacket struct {
	Renter            Person    `json:"renter" binding:"required"`
	AdditionalDrivers []Person  `json:"additionalDrivers" binding:"omitempty,max=3,dive"`
	Insurance         Insurance `json:"insurance" binding:"required"`
	AgreedToTerms     bool      `json:"agreedToTerms"`

	// Photos lists the stored photo paths, filled in by the service
	Photos []string `json:"photos,omitempty"`
}

// Photo fields of the customer-info form
const (
	PhotoLicenseFront  = "licenseFront"
	PhotoLicenseBack   = "licenseBack"
	PhotoInsuranceCard = "insuranceCard"
)

// CustomerInfoResponse is returned after the packet is stored
type CustomerInfoResponse struct {
	ContractURL string `json:"contract_url,omitempty"`
	Message     string `json:"message"`
}
