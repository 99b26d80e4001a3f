package dbc

const fullDocument = `VERSION "1.0"


NS_ :
	NS_DESC_
	CM_
	BA_DEF_
	BA_
	VAL_
	BA_DEF_DEF_
	EV_DATA_
	ENVVAR_DATA_
	VAL_TABLE_

BS_:

BU_: ABS DRS_MM5_10 Node0
VAL_TABLE_ ABS_fault_info 2 "active faults stored" 1 "inactive faults stored" 0 "no faults stored" ;
VAL_TABLE_ vt_WheelSpeedQualifier 5 "InvalidUnderVoltage" 4 "NotCalculated" 3 "ReducedMonitored" 2 "Faulty" 1 "Normal" 0 "NotInitialized" ;


BO_ 117 DRS_RX_ID0: 8 ABS

BO_ 112 MM5_10_TX1: 8 DRS_MM5_10
 SG_ Yaw_Rate : 0|16@1+ (0.005,-163.84) [-163.84|163.83] "°/s"  ABS
 SG_ AY1 : 32|16@1+ (0.000127465,-4.1768) [-4.1768|4.1765] "g"  ABS

BO_ 2147487969 Multiplexed: 8 Vector__XXX
 SG_ Mux M : 0|8@1+ (1,0) [0|255] "" Vector__XXX
 SG_ Sub m1 : 8|8@0- (1,0) [0|0] "" Node0
 SG_ Both m2M : 16|8@1+ (1,0) [0|0] "" Node0,ABS

EV_ UnrestrictedEnvVar: 0 [0|0] "Nm" 0 1 DUMMY_NODE_VECTOR8000  Node0;
EV_ RWEnvVar_wData: 1 [0|1234] "m" 0.5 2 DUMMY_NODE_VECTOR3 Node0,ABS;
EV_ NoNode: 0 [0|10] "" 0 3 DUMMY_NODE_VECTOR0 Vector__XXX;

ENVVAR_DATA_ RWEnvVar_wData: 10;

CM_ "Network comment";
CM_ BU_ ABS "Brake unit";
CM_ BO_ 112 "Yaw sensor \"MM5\"";
CM_ SG_ 112 Yaw_Rate "Rate \q of yaw";
CM_ EV_ RWEnvVar_wData "env";

BA_DEF_ "BusType" STRING ;
BA_DEF_ BU_ "NodeLayer" INT 0 100;
BA_DEF_ BO_ "GenMsgCycleTime" INT 0 65535;
BA_DEF_ SG_  "SGEnumAttribute" ENUM  "Val0","Val1","Val2";
BA_DEF_ EV_ "EvFloat" FLOAT -1.5 2.5e3;
BA_DEF_ BO_ "MsgHex" HEX 0 255;
BA_DEF_REL_ BU_EV_REL_ "ControlUnitEnvVar" STRING ;
BA_DEF_REL_ BU_BO_REL_ "NodeTx" INT 0 10;
BA_DEF_REL_ BU_SG_REL_ "NodeRx" ENUM "No","Yes";

BA_DEF_DEF_ "BusType" "CAN";
BA_DEF_DEF_ "GenMsgCycleTime" 100;
BA_DEF_DEF_REL_ "NodeTx" 0;

BA_ "BusType" "CAN";
BA_ "NodeLayer" BU_ ABS 1;
BA_ "GenMsgCycleTime" BO_ 112 20;
BA_ "SGEnumAttribute" SG_ 112 Yaw_Rate 2;
BA_ "EvFloat" EV_ RWEnvVar_wData 1.25;

VAL_ 112 Yaw_Rate 1 "one" 0 "zero" ;
VAL_ 2147487969 Mux 2 "b" 1 "a" ;
VAL_ RWEnvVar_wData 1 "on" 0 "off" ;
`

const minimalDocument = "VERSION \"\"\nNS_:\nBU_:\n"
