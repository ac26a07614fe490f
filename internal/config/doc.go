// Package config provides configuration parsing for the sortable server
// and terminal list.
//
// The configuration is stored in sortable.json, sortable.yaml or
// sortable.yml. This package handles loading, defaulting and validating
// it, and maps the list section onto controller options.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "heartbeatInterval": "30s"
//	  },
//	  "list": {
//	    "items": ["alpha", "beta", "gamma"],
//	    "draggingClassNames": ["dragging"],
//	    "dragoverClassNames": ["dragover"],
//	    "animate": true,
//	    "insertPolicy": "drop",
//	    "axis": "y",
//	    "animation": {"duration": "200ms", "stagger": "20ms"}
//	  },
//	  "log": {"level": "info", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := cfg.ListOptions()
package config
