package main

import (
	"bufio"
	"fmt"
	"strings"

	"library-circulation/library"
)

func adminLogin(sc *bufio.Scanner, engine *library.Engine) {
	username := prompt(sc, "Username: ")
	secret, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if _, err := engine.Admins().Authenticate(username, secret); err != nil {
		fmt.Println("Invalid login")
		return
	}
	adminMenu(sc, engine, username)
}

func adminMenu(sc *bufio.Scanner, engine *library.Engine, username string) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("ADMIN MENU")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Student Management\n2. Book Management\n3. Fine Management\n4. Password Management\n5. Reports\n6. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			studentManagementMenu(sc, engine)
		case "2":
			bookManagementMenu(sc, engine)
		case "3":
			fineManagementMenu(sc, engine)
		case "4":
			passwordManagementMenu(sc, engine, username)
		case "5":
			rep, err := engine.BuildReport(5)
			if err != nil {
				fmt.Printf("Error building report: %v\n", err)
				continue
			}
			printReport(rep)
		default:
			return
		}
	}
}

func studentManagementMenu(sc *bufio.Scanner, engine *library.Engine) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("        STUDENT MANAGEMENT")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Add Student\n2. View Students\n3. Delete Student\n4. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			handleAddStudent(sc, engine)
		case "2":
			handleViewStudents(engine)
		case "3":
			id := prompt(sc, "Enter Student ID to delete: ")
			removed, err := engine.RemoveStudent(id)
			if err != nil {
				fmt.Printf("Error deleting student: %v\n", err)
			} else if !removed {
				fmt.Println("Student not found.")
			} else {
				fmt.Println("Student deleted successfully.")
			}
		default:
			return
		}
	}
}

func handleAddStudent(sc *bufio.Scanner, engine *library.Engine) {
	id := prompt(sc, "Student ID (blank to generate): ")
	if id == "" {
		id = library.NewID()
		fmt.Printf("Generated ID: %s\n", id)
	}
	name := prompt(sc, "Name: ")
	category := library.Category(strings.ToUpper(prompt(sc, "Category (UG/PG/RS/GUEST): ")))
	if !category.Valid() {
		fmt.Println("Unknown category.")
		return
	}
	secret, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if _, err := engine.Students().Create(id, name, category, secret); err != nil {
		fmt.Printf("Error adding student: %v\n", err)
		return
	}
	fmt.Println("Student added successfully.")
}

func handleViewStudents(engine *library.Engine) {
	students, err := engine.ListStudents()
	if err != nil {
		fmt.Printf("Error listing students: %v\n", err)
		return
	}
	fmt.Println("\n" + strings.Repeat("-", 50))
	fmt.Println("STUDENT LIST")
	fmt.Println(strings.Repeat("-", 50))
	for _, s := range students {
		fmt.Printf("ID     : %s\n", s.ID)
		fmt.Printf("Name   : %s\n", s.Name)
		fmt.Printf("Type   : %s\n", s.Category)
		fmt.Printf("Status : %s\n", s.Status)

		outstanding, _ := engine.OutstandingFor(s.ID)
		ids := make([]string, 0, len(outstanding))
		for _, ir := range outstanding {
			ids = append(ids, ir.BookID)
		}
		if len(ids) == 0 {
			fmt.Println("Books  : None")
		} else {
			fmt.Printf("Books  : %s\n", strings.Join(ids, ", "))
		}

		total, _ := engine.TotalFineFor(s.ID)
		fmt.Printf("Fine   : Rs. %d\n", total)
		fmt.Println(strings.Repeat("-", 50))
	}
}

func bookManagementMenu(sc *bufio.Scanner, engine *library.Engine) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("          BOOK MANAGEMENT")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Add Book\n2. View Books\n3. Delete Book\n4. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			id := prompt(sc, "Book ID (blank to generate): ")
			if id == "" {
				id = library.NewID()
				fmt.Printf("Generated ID: %s\n", id)
			}
			title := prompt(sc, "Title: ")
			author := prompt(sc, "Author: ")
			qty := promptInt(sc, "Quantity: ")
			book := &library.Book{ID: id, Title: title, Author: author, Quantity: qty}
			if err := engine.Inventory().Create(book); err != nil {
				fmt.Printf("Error adding book: %v\n", err)
			} else {
				fmt.Println("Book added successfully.")
			}
		case "2":
			listBooks(engine)
		case "3":
			id := prompt(sc, "Enter Book ID to delete: ")
			removed, err := engine.Inventory().Remove(id)
			if err != nil {
				fmt.Printf("Error deleting book: %v\n", err)
			} else if !removed {
				fmt.Println("Book not found.")
			} else {
				fmt.Println("Book deleted successfully.")
			}
		default:
			return
		}
	}
}

func listBooks(engine *library.Engine) {
	books, err := engine.ListBooks()
	if err != nil {
		fmt.Printf("Error listing books: %v\n", err)
		return
	}
	fmt.Println("\n" + strings.Repeat("-", 50))
	fmt.Println("BOOK LIST")
	fmt.Println(strings.Repeat("-", 50))
	for _, b := range books {
		fmt.Printf("ID     : %s\n", b.ID)
		fmt.Printf("Title  : %s\n", b.Title)
		fmt.Printf("Author : %s\n", b.Author)
		fmt.Printf("Qty    : %d\n", b.Quantity)
		fmt.Println(strings.Repeat("-", 50))
	}
}

func fineManagementMenu(sc *bufio.Scanner, engine *library.Engine) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("          FINE MANAGEMENT")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Manage Student Fine\n2. View Reports\n3. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			handleManageFine(sc, engine)
		case "2":
			rep, err := engine.BuildReport(5)
			if err != nil {
				fmt.Printf("Error building report: %v\n", err)
				continue
			}
			printReport(rep)
		default:
			return
		}
	}
}

func handleManageFine(sc *bufio.Scanner, engine *library.Engine) {
	id := prompt(sc, "Enter Student ID: ")
	fines, err := engine.FinesFor(id)
	if err != nil {
		fmt.Printf("Error loading fines: %v\n", err)
		return
	}
	if len(fines) == 0 {
		fmt.Println("No fine record found.")
		return
	}
	for _, fr := range fines {
		fmt.Println("\n" + strings.Repeat("-", 50))
		fmt.Println("FINE DETAILS")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Student ID : %s\n", fr.StudentID)
		fmt.Printf("Book ID    : %s\n", fr.BookID)
		fmt.Printf("Late Days  : %d\n", fr.LateDays)
		fmt.Printf("Fine       : Rs. %d\n", fr.Fine)
		fmt.Printf("Rent       : Rs. %d\n", fr.Rent)
		fmt.Printf("Total      : Rs. %d\n", fr.Total)
		fmt.Println(strings.Repeat("-", 50))
	}
	fmt.Println("1. Remove Fine Amount\n2. Remove Rent Amount\n3. Exit")
	var reduceFine, reduceRent int
	switch prompt(sc, "Choice: ") {
	case "1":
		reduceFine = promptInt(sc, "Amount to remove: ")
	case "2":
		reduceRent = promptInt(sc, "Amount to remove: ")
	default:
		return
	}
	if err := engine.AdjustFine(id, reduceFine, reduceRent); err != nil {
		fmt.Printf("Error updating fine: %v\n", err)
		return
	}
	fmt.Println("Fine updated successfully.")
}

func passwordManagementMenu(sc *bufio.Scanner, engine *library.Engine, username string) {
	for {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("          PASSWORD MANAGEMENT")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println("1. Change Student Password\n2. Change Admin Password\n3. Exit")
		switch prompt(sc, "Choice: ") {
		case "1":
			id := prompt(sc, "Student ID: ")
			oldSecret, err := readPassword("Old Password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			newSecret, err := readPassword("New Password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			if err := engine.Students().SetSecret(id, oldSecret, newSecret); err != nil {
				fmt.Println("Student not found or old password incorrect.")
			} else {
				fmt.Println("Student password changed successfully.")
			}
		case "2":
			oldSecret, err := readPassword("Old Password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			newSecret, err := readPassword("New Password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			if err := engine.Admins().ChangeSecret(username, oldSecret, newSecret); err != nil {
				fmt.Println("Admin not found or old password incorrect.")
			} else {
				fmt.Println("Admin password changed successfully.")
			}
		default:
			return
		}
	}
}
