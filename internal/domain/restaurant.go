package domain

import "time"

type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ManagerName  string    `json:"managerName"`
	ManagerEmail string    `json:"managerEmail"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"createdAt"`
}
