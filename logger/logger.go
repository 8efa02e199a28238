package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger   *log.Logger
	ScanLogger  *log.Logger
	ErrorLogger *log.Logger

	logLevel    string
	appLogFile  *os.File
	scanLogFile *os.File
	initialized bool
)

func InitGlobalLoggers(appLogPath, scanLogPath, level string) error {
	if initialized && appLogFile != nil && scanLogFile != nil && strings.ToUpper(level) == logLevel {
		// Already initialized with same settings, perhaps a redundant call.
		return nil
	}
	// If files are open, close them before re-initializing
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if scanLogFile != nil {
		scanLogFile.Close()
		scanLogFile = nil
	}

	logLevel = strings.ToUpper(level)
	if logLevel == "" {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	actualAppLogPath := appLogPath
	appLogDir := filepath.Dir(appLogPath)
	var appLogWriter io.Writer = io.Discard
	if err := os.MkdirAll(appLogDir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create app log directory %s: %v. App logs (Info/Debug) will be discarded.", appLogDir, err)
		actualAppLogPath = "(discarded)"
	} else {
		var errApp error
		appLogFile, errApp = os.OpenFile(appLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if errApp != nil {
			ErrorLogger.Printf("Failed to open app log file %s: %v. App logs (Info/Debug) will be discarded.", appLogPath, errApp)
			actualAppLogPath = "(discarded)"
		} else {
			appLogWriter = appLogFile // Always use the file if openable
		}
	}
	AppLogger = log.New(appLogWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)

	actualScanLogPath := scanLogPath
	scanLogDir := filepath.Dir(scanLogPath)
	var scanLogWriter io.Writer = io.Discard
	if err := os.MkdirAll(scanLogDir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create scan log directory %s: %v. Scan logs (Info/Debug) will be discarded.", scanLogDir, err)
		actualScanLogPath = "(discarded)"
	} else {
		var errScan error
		scanLogFile, errScan = os.OpenFile(scanLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if errScan != nil {
			ErrorLogger.Printf("Failed to open scan log file %s: %v. Scan logs (Info/Debug) will be discarded.", scanLogPath, errScan)
			actualScanLogPath = "(discarded)"
		} else {
			scanLogWriter = scanLogFile // Always use the file if openable
		}
	}
	ScanLogger = log.New(scanLogWriter, "SCAN: ", log.Ldate|log.Ltime|log.Lshortfile)

	if !initialized { // Print init messages only once
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, actualAppLogPath)
		ScanLogger.Printf("Scan logger initialized. Log level: %s. Output file: %s", logLevel, actualScanLogPath)
	}
	initialized = true
	return nil
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && (logLevel == "INFO" || logLevel == "DEBUG") {
		AppLogger.Printf(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && logLevel == "DEBUG" {
		AppLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && (logLevel == "WARN" || logLevel == "INFO" || logLevel == "DEBUG") { // Warnings also show if level is INFO or DEBUG
		AppLogger.Printf(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Print(message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Print(message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

func ScanInfo(format string, v ...interface{}) {
	if ScanLogger != nil && (logLevel == "INFO" || logLevel == "DEBUG") {
		ScanLogger.Printf(format, v...)
	}
}

func ScanDebug(format string, v ...interface{}) {
	if ScanLogger != nil && logLevel == "DEBUG" {
		ScanLogger.Printf(format, v...)
	}
}

func ScanError(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil { // All errors go to stderr via ErrorLogger
		ErrorLogger.Print(message)
	}
	if ScanLogger != nil && scanLogFile != nil { // Also write to scan log file
		ScanLogger.Print(message)
	}
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil // Prevent double close
	}
	if scanLogFile != nil {
		ScanLogger.Println("Closing scan log file.")
		scanLogFile.Close()
		scanLogFile = nil // Prevent double close
	}
	initialized = false // Allow re-initialization if needed (e.g. tests)
}
