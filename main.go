package main

import (
	"fmt"
	"log"
	"os"

	"github.com/esg-insight/qa-contract-tests/apiservice"
	"github.com/esg-insight/qa-contract-tests/config"
	"github.com/esg-insight/qa-contract-tests/framework"
	"github.com/esg-insight/qa-contract-tests/qatests"
	"github.com/esg-insight/qa-contract-tests/servicedef"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	cfg.ApplyURLOverrides(params.serviceURL, params.aimlURL)

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	api := apiservice.NewClient(cfg.BaseURL, mainDebugLogger)
	aiml := apiservice.NewClient(cfg.AIMLURL, mainDebugLogger)

	if err := api.WaitUntilReady(cfg.StartupTimeout(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	sessions := apiservice.NewSessionProvider(api,
		servicedef.LoginRequest{Email: cfg.Analyst.Email, Password: cfg.Analyst.Password},
		servicedef.LoginRequest{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
	)

	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := qatests.RunTestSuite(qatests.SuiteParams{
		API:      api,
		AIML:     aiml,
		Sessions: sessions,
		Config:   cfg,
	}, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		printRerunHint(params, results)
		os.Exit(1)
	}
}
