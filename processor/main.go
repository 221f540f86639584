package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"freight-wms/config"
	"freight-wms/database"
	"freight-wms/idgen"
	"freight-wms/models"
	"freight-wms/repositories"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Standalone importer for order files dropped by the host system.
// OUT_*.csv files become outbound jobs; processed files move to a
// sibling `processed` folder and a report mail goes out per file.
//
// Expected columns:
//   CUSTOMER_CODE, DELIVERY_NO, ITEM_CODE, BATCH_NO, QUANTITY, UOM, WHS_CODE

func main() {
	config.LoadConfig()
	idgen.Init()

	db, err := database.OpenConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	fmt.Println("🚀 Import processor running...")
	checkUnprocessedFiles(db)
	fmt.Println("✅ All files processed")
}

func checkUnprocessedFiles(db *gorm.DB) {
	files, err := filepath.Glob(filepath.Join(config.ImportFolder, "*.csv"))
	if err != nil {
		log.Fatal("Failed to read import folder:", err)
	}

	for _, file := range files {
		processFile(db, file)
	}
}

func processFile(db *gorm.DB, filename string) {
	fileNameOnly := filepath.Base(filename)

	var existing models.FileLog
	if err := db.Where("filename = ?", fileNameOnly).First(&existing).Error; err == nil {
		log.Println("File already processed, skip:", fileNameOnly)
		return
	}

	info, err := os.Stat(filename)
	if err != nil {
		log.Println("Failed to stat file:", err)
		return
	}

	switch {
	case strings.HasPrefix(fileNameOnly, "OUT_"):
		fmt.Println("🚚 Processing order file:", fileNameOnly)
		if err := processOutboundCSV(db, filename); err != nil {
			log.Println("Failed to process", fileNameOnly, ":", err)
			return
		}
	default:
		log.Println("Unrecognized file, skip:", fileNameOnly)
		return
	}

	db.Create(&models.FileLog{Filename: fileNameOnly, DateModified: info.ModTime()})
}

func processOutboundCSV(db *gorm.DB, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	file.Close()
	if err != nil {
		return err
	}

	if len(records) < 2 {
		return fmt.Errorf("file %s has no data rows", filepath.Base(filename))
	}

	jobNo, err := repositories.GenerateJobNo(db)
	if err != nil {
		return err
	}

	customerCode := strings.TrimSpace(records[1][0])
	var customer models.Customer
	if err := db.Where("customer_code = ?", customerCode).First(&customer).Error; err != nil {
		customer = models.Customer{
			CustomerCode: customerCode,
			CustomerName: customerCode,
		}
		db.Create(&customer)
	}

	job := models.OutboundJob{
		JobNo:        jobNo,
		JobDate:      time.Now().Format("2006-01-02"),
		WhsCode:      strings.TrimSpace(records[1][6]),
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		DeliveryNo:   strings.TrimSpace(records[1][1]),
		Remarks:      "imported from " + filepath.Base(filename),
	}

	for i, record := range records {
		if i == 0 {
			continue // header row
		}
		if len(record) < 7 {
			log.Printf("Row %d: expected 7 columns, got %d, skip", i+1, len(record))
			continue
		}

		itemCode := strings.TrimSpace(record[2])
		quantity, _ := strconv.Atoi(strings.TrimSpace(record[4]))
		if itemCode == "" || quantity <= 0 {
			log.Printf("Row %d: missing item or quantity, skip", i+1)
			continue
		}

		var sku models.Sku
		db.Where("item_code = ?", itemCode).First(&sku)
		if sku.ID == 0 {
			sku = models.Sku{
				ItemCode: itemCode,
				ItemName: itemCode,
				Barcode:  itemCode,
				Uom:      strings.TrimSpace(record[5]),
			}
			db.Create(&sku)
		}

		job.Lines = append(job.Lines, models.OutboundLine{
			JobNo:      jobNo,
			LineNumber: len(job.Lines) + 1,
			ItemID:     int(sku.ID),
			ItemCode:   sku.ItemCode,
			BatchNo:    strings.TrimSpace(record[3]),
			Quantity:   quantity,
			Uom:        strings.TrimSpace(record[5]),
			WhsCode:    strings.TrimSpace(record[6]),
		})
	}

	if len(job.Lines) == 0 {
		return fmt.Errorf("file %s produced no valid lines", filepath.Base(filename))
	}

	if err := db.Create(&job).Error; err != nil {
		return err
	}
	fmt.Println("✅ Outbound created:", job.JobNo)

	if config.ReportTo != "" {
		if err := sendReport(job.JobNo, len(job.Lines)); err != nil {
			log.Println("Failed to send report mail:", err)
		}
	}

	return moveToProcessed(filename)
}

func moveToProcessed(filename string) error {
	processedFolder := filepath.Join(filepath.Dir(config.ImportFolder), "processed")
	if _, err := os.Stat(processedFolder); os.IsNotExist(err) {
		if err := os.MkdirAll(processedFolder, os.ModePerm); err != nil {
			return err
		}
	}

	dst := filepath.Join(processedFolder, filepath.Base(filename))
	if err := os.Rename(filename, dst); err != nil {
		// rename fails across volumes, fall back to copy and delete
		return copyAndDeleteFile(filename, dst)
	}
	return nil
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return err
	}
	return os.Remove(src)
}

func sendReport(jobNo string, lineCount int) error {
	subject := "🚚 New Outbound " + jobNo
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>New outbound job created by import</h3>
				<p>Job No: <strong>%s</strong></p>
				<p>Lines: <strong>%d</strong></p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, jobNo, lineCount)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", strings.Split(config.ReportTo, ",")...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}
	fmt.Println("✅ Report mail sent to:", config.ReportTo)
	return nil
}
