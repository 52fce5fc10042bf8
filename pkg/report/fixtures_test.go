package report

import "fmt"

// ReportMockLogger captures formatted log lines for assertions
type ReportMockLogger struct {
	Lines []string
}

func (m *ReportMockLogger) Debugf(format string, args ...interface{}) {
	m.Lines = append(m.Lines, "DEBUG "+fmt.Sprintf(format, args...))
}

func (m *ReportMockLogger) Infof(format string, args ...interface{}) {
	m.Lines = append(m.Lines, "INFO "+fmt.Sprintf(format, args...))
}

func (m *ReportMockLogger) Warnf(format string, args ...interface{}) {
	m.Lines = append(m.Lines, "WARN "+fmt.Sprintf(format, args...))
}

func (m *ReportMockLogger) Errorf(format string, args ...interface{}) {
	m.Lines = append(m.Lines, "ERROR "+fmt.Sprintf(format, args...))
}

// canonicalReport mimics a full ggsci transcript of a healthy classic
// instance: one extract, one replicat, a running manager, prompt echo
// lines interleaved the way the console prints them.
const canonicalReport = `
Oracle GoldenGate Command Interpreter for Oracle
Version 19.1.0.0.4 OGGCORE_19.1.0.0.0OGGRU_PLATFORMS_191017.1054
Linux, x64, 64bit (optimized), Oracle 19c on Oct 17 2019 21:16:29

Copyright (C) 1995, 2019, Oracle and/or its affiliates. All rights reserved.

GGSCI (srv1.example.com) 1> shell printf "\n==== INFO * SECTION START ====\n"
==== INFO * SECTION START ====

GGSCI (srv1.example.com) 2> info * detail

EXTRACT    EXT1      Last Started 2024-08-01 10:00   Status RUNNING
Checkpoint Lag       00:00:10 (updated 00:00:02 ago)
Process ID           1001
Log Read Checkpoint  Oracle Redo Logs
                     2024-08-01 12:00:00  Thread 1, Seqno 120, RBA 52428800
                     SCN 0.8986202 (8986202)

  Write Checkpoint  #1

  Trail Name                           Seqno        RBA     Max MB Trail Type
  ./dirdat/aa                             12       3456        500 EXTTRAIL

REPLICAT   REP1      Last Started 2024-08-01 10:05   Status RUNNING
Checkpoint Lag       00:01:30 (updated 00:00:01 ago)
Process ID           1002
Log Read Checkpoint File ./dirdat/rt000042
                     2024-08-01 12:00:01.000123  RBA 1024

GGSCI (srv1.example.com) 3> shell printf "\n==== INFO * SECTION END ====\n"
==== INFO * SECTION END ====

GGSCI (srv1.example.com) 4> shell printf "\n==== INFO ALL SECTION START ====\n"
==== INFO ALL SECTION START ====

GGSCI (srv1.example.com) 5> info all

Program     Status      Group       Lag at Chkpt  Time Since Chkpt

MANAGER     RUNNING
EXTRACT     RUNNING     EXT1        00:00:10      00:00:02
REPLICAT    RUNNING     REP1        00:01:30      00:00:01

GGSCI (srv1.example.com) 6> shell printf "\n==== INFO ALL SECTION END ====\n"
==== INFO ALL SECTION END ====

GGSCI (srv1.example.com) 7> shell printf "\n==== GETLAG SECTION START ====\n"
==== GETLAG SECTION START ====

GGSCI (srv1.example.com) 8> send * getlag

Sending GETLAG request to EXTRACT EXT1 ...
Last record lag 5 seconds.

Sending GETLAG request to REPLICAT REP1 ...
Last record lag 7 seconds.

GGSCI (srv1.example.com) 9> shell printf "\n==== GETLAG SECTION END ====\n"
==== GETLAG SECTION END ====

GGSCI (srv1.example.com) 10> shell printf "\n==== MANAGER SECTION START ====\n"
==== MANAGER SECTION START ====

GGSCI (srv1.example.com) 11> info mgr

Manager is running (IP port srv1.example.com.7809, Process ID 900).

GGSCI (srv1.example.com) 12> shell printf "\n==== MANAGER SECTION END ====\n"
==== MANAGER SECTION END ====

GGSCI (srv1.example.com) 13> exit
`

func canonicalLines() []string {
	return PrepareLines(canonicalReport)
}
