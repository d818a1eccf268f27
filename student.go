package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"library-circulation/library"
)

func studentLogin(sc *bufio.Scanner, engine *library.Engine) {
	id := prompt(sc, "Student ID: ")
	secret, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	student, err := engine.Login(id, secret)
	if err != nil {
		fmt.Println("Invalid login")
		return
	}
	studentMenu(sc, engine, student)
}

func studentMenu(sc *bufio.Scanner, engine *library.Engine, student *library.Student) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Printf("Welcome %s (ID: %s, Status: %s)\n", student.Name, student.ID, student.Status)
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. View Available Books")
		fmt.Println("2. Request Book")
		fmt.Println("3. Return Book")
		fmt.Println("4. View Fine")
		fmt.Println("5. View Allotted Books")
		fmt.Println("6. Change Password")
		fmt.Println("7. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			listBooks(engine)
		case "2":
			bookID := prompt(sc, "Enter Book ID to request: ")
			if err := engine.RequestIssue(student.ID, bookID); err != nil {
				switch {
				case errors.Is(err, library.ErrBlocked):
					fmt.Println("You are BLOCKED due to high fines. Cannot request books.")
				case errors.Is(err, library.ErrIssueLimit):
					fmt.Println("You have reached your issue limit.")
				case errors.Is(err, library.ErrNotAvailable):
					fmt.Println("Book not available.")
				default:
					fmt.Printf("Error: %v\n", err)
				}
			} else {
				fmt.Println("Book issued successfully.")
			}
		case "3":
			bookID := prompt(sc, "Enter Book ID to return: ")
			daysKept := promptInt(sc, "Enter days kept: ")
			receipts, err := engine.ProcessReturn(student.ID, bookID, daysKept)
			if err != nil {
				fmt.Printf("Error returning book: %v\n", err)
				continue
			}
			for _, r := range receipts {
				fmt.Printf("Book returned. Fine: %d, Rent: %d, Total: %d\n", r.Fine, r.Rent, r.Total)
			}
			// Status may have flipped after the charges landed.
			if s, err := engine.Students().Find(student.ID); err == nil && s != nil {
				student.Status = s.Status
			}
		case "4":
			fines, err := engine.FinesFor(student.ID)
			if err != nil {
				fmt.Printf("Error loading fines: %v\n", err)
				continue
			}
			fmt.Println("\n" + strings.Repeat("-", 50))
			fmt.Println("YOUR FINE DETAILS")
			fmt.Println(strings.Repeat("-", 50))
			total := 0
			for _, fr := range fines {
				fmt.Printf("Book ID: %s, Fine: %d, Rent: %d, Total: %d\n", fr.BookID, fr.Fine, fr.Rent, fr.Total)
				total += fr.Total
			}
			fmt.Printf("\nTotal Fine: Rs. %d\n", total)
			fmt.Println(strings.Repeat("-", 50))
		case "5":
			outstanding, err := engine.OutstandingFor(student.ID)
			if err != nil {
				fmt.Printf("Error loading allotted books: %v\n", err)
				continue
			}
			fmt.Println("\nALLOTTED BOOKS:")
			for _, ir := range outstanding {
				overdue := ""
				if ir.DaysKept > library.GraceDays {
					overdue = " (OVERDUE)"
				}
				fmt.Printf("Book ID: %s, Days Kept: %d%s\n", ir.BookID, ir.DaysKept, overdue)
			}
		case "6":
			oldSecret, err := readPassword("Old password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			newSecret, err := readPassword("New password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			if err := engine.Students().SetSecret(student.ID, oldSecret, newSecret); err != nil {
				fmt.Println("Old password incorrect")
			} else {
				fmt.Println("Password changed successfully.")
			}
		default:
			return
		}
	}
}
