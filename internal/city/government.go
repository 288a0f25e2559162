package city

// Employee is a civil servant in a department.
type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Competence float64 `json:"competence"`
	Loyalty    float64 `json:"loyalty"`
	Workload   float64 `json:"workload"`
	Mood       float64 `json:"mood"`
}

// Department is a branch of the city administration.
type Department struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Budget     int64      `json:"budget"`
	Efficiency float64    `json:"efficiency"`
	Employees  []Employee `json:"employees"`
}

// GovernmentState owns the administration.
type GovernmentState struct {
	Departments          map[string]Department `json:"departments"`
	EmployeeSatisfaction float64               `json:"employeeSatisfaction"`
	DepartmentEfficiency float64               `json:"departmentEfficiency"`
	MonthlyDecisions     int                   `json:"monthlyDecisions"`
}
