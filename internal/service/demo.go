package service

import "github.com/shopspring/decimal"

var demoEmployees = []struct {
	first, last, email, contact, designation, salary string
}{
	{"Aarav", "Sharma", "aarav.sharma@company.com", "9876543210", "Software Engineer", "75000.00"},
	{"Priya", "Patel", "priya.patel@company.com", "9876543211", "Software Engineer", "78000.00"},
	{"Rohan", "Mehta", "rohan.mehta@company.com", "9876543212", "Software Engineer", "72000.00"},
	{"Ananya", "Iyer", "ananya.iyer@company.com", "9876543213", "Senior Software Engineer", "110000.00"},
	{"Karthik", "Reddy", "karthik.reddy@company.com", "9876543214", "Senior Software Engineer", "115000.00"},
	{"Neha", "Gupta", "neha.gupta@company.com", "9876543215", "Manager", "150000.00"},
	{"Vikram", "Singh", "vikram.singh@company.com", "9876543216", "Manager", "155000.00"},
	{"Sneha", "Nair", "sneha.nair@company.com", "9876543217", "HR Executive", "55000.00"},
	{"Arjun", "Verma", "arjun.verma@company.com", "9876543218", "HR Executive", "52000.00"},
	{"Divya", "Menon", "divya.menon@company.com", "9876543219", "Data Analyst", "68000.00"},
	{"Rahul", "Joshi", "rahul.joshi@company.com", "9876543220", "Data Analyst", "65000.00"},
	{"Kavya", "Krishnan", "kavya.krishnan@company.com", "9876543221", "Data Analyst", "70000.00"},
}

// DemoEmployees returns the fixed demo data set.
func DemoEmployees() []RegisterInput {
	out := make([]RegisterInput, len(demoEmployees))
	for i, d := range demoEmployees {
		out[i] = RegisterInput{
			FirstName:   d.first,
			LastName:    d.last,
			Email:       d.email,
			Contact:     d.contact,
			Designation: d.designation,
			Salary:      decimal.RequireFromString(d.salary),
		}
	}
	return out
}
