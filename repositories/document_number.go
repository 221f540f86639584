package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"freight-wms/models"

	"gorm.io/gorm"
)

// Document numbers are PREFIX + YYMMDD + 4-digit sequence, sequence
// resetting per day.

func GenerateInboundNo(db *gorm.DB) (string, error) {
	var last models.InboundJob
	if err := db.Last(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return nextNumber("IB", last.InboundNo), nil
}

func GenerateJobNo(db *gorm.DB) (string, error) {
	var last models.OutboundJob
	if err := db.Last(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return nextNumber("OB", last.JobNo), nil
}

func GenerateBookingNo(db *gorm.DB) (string, error) {
	var last models.ContainerBooking
	if err := db.Last(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return nextNumber("BK", last.BookingNo), nil
}

func nextNumber(prefix, lastNo string) string {
	currentDate := time.Now().Format("060102") // 06=YY, 01=MM, 02=DD

	if lastNo != "" && len(lastNo) >= 12 {
		lastDatePart := lastNo[2:8]
		lastSequenceStr := lastNo[len(lastNo)-4:]

		if currentDate == lastDatePart {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			return fmt.Sprintf("%s%s%04d", prefix, currentDate, lastSequenceInt+1)
		}
	}

	// no earlier document today, restart the sequence
	return fmt.Sprintf("%s%s%04d", prefix, currentDate, 1)
}
